package health

// Input represents the input for health check endpoint
type Input struct{}

// Output represents the output for health check endpoint
type Output struct {
	Body Response
}

// Response represents the health check response
type Response struct {
	Status  string `json:"status" example:"ok" doc:"Health status of the service"`
	Message string `json:"message" example:"Estou vivo!" doc:"Human readable liveness message"`
}
