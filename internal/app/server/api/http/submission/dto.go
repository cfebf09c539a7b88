package submission

type submitInput struct {
	Body    map[string]any `doc:"Qualquer objeto JSON"`
	RawBody []byte
}

type submitOutput struct {
	Status int
	Body   submitResponse
}

type submitResponse struct {
	Status  string `json:"status,omitempty" example:"ok"`
	Key     string `json:"s3_key,omitempty" example:"submissions/20250101T120000Z-1735732800000-3f8e2a0c-8d0e-4c4b-9d43-3b0f0e1f7c11.json"`
	Error   string `json:"error,omitempty" example:"Falha no processamento"`
	Details string `json:"details,omitempty"`
	Step    string `json:"step,omitempty" enum:"blob_write,notify"`
}
