package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID:   "health-check",
		Method:        http.MethodGet,
		Path:          "/",
		Summary:       "Health check endpoint",
		Description:   "Returns 200 OK while the service is up",
		Tags:          []string{"health"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}
