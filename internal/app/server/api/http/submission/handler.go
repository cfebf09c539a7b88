package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tabela/internal/domain/submission"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const failureMessage = "Falha no processamento"

type Handler struct {
	service    submission.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service submission.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.submitOp(), h.submit)
}

func (h *Handler) submit(ctx context.Context, input *submitInput) (*submitOutput, error) {
	payload := json.RawMessage(input.RawBody)
	if len(payload) == 0 {
		// Body was filled without the raw bytes, e.g. in direct calls.
		var err error
		if payload, err = json.Marshal(input.Body); err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid JSON body", err)
		}
	}

	res, err := h.service.Submit(ctx, payload)
	if err != nil {
		if errors.Is(err, submission.ErrInvalidPayload) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		body := submitResponse{Error: failureMessage, Details: err.Error()}
		var stepErr *submission.StepError
		if errors.As(err, &stepErr) {
			body.Step = string(stepErr.Step)
			body.Details = stepErr.Err.Error()
		}
		h.log.Error("submission failed", "step", body.Step, "error", err)

		return &submitOutput{Status: http.StatusInternalServerError, Body: body}, nil
	}

	return &submitOutput{
		Status: http.StatusOK,
		Body:   submitResponse{Status: res.Status, Key: res.Key},
	}, nil
}
