package submission

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) submitOp() huma.Operation {
	return huma.Operation{
		OperationID:   "submit",
		Method:        http.MethodPost,
		Path:          "/submit",
		Summary:       "Enviar submissão",
		Description:   "Salva o JSON recebido no S3 e envia uma notificação por e-mail via SES.",
		Tags:          []string{"submit"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}
