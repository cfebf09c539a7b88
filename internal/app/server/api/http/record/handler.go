package record

import (
	"context"
	"errors"
	"net/http"

	"tabela/internal/domain/record"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	// notFoundStatus is written with {"erro": ...} bodies.
	notFoundStatus int
}

// NewHandler builds the tabela handler. With strictNotFound a missing id
// is answered with 404, otherwise with 200 and an error body.
func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares, strictNotFound bool) *Handler {
	if log == nil {
		log = slog.Default()
	}
	status := http.StatusOK
	if strictNotFound {
		status = http.StatusNotFound
	}
	return &Handler{
		service:        service,
		log:            log,
		middleware:     mws,
		notFoundStatus: status,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	records, err := h.service.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list records", err)
	}

	return &listOutput{
		Body: records,
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*recordOutput, error) {
	rec, err := h.service.Create(ctx, input.Name, input.Age)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to create record", err)
	}

	return &recordOutput{
		Body: rec,
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	rec, err := h.service.Update(ctx, input.ID, input.Name, input.Age)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			h.log.Debug("record to update not found", "record_id", input.ID)
			return &updateOutput{
				Status: h.notFoundStatus,
				Body:   updateResponse{Erro: notFoundMessage},
			}, nil
		}
		return nil, huma.Error500InternalServerError("failed to update record", err)
	}

	return &updateOutput{
		Status: http.StatusOK,
		Body:   recordResponse(rec),
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	msg, err := h.service.Delete(ctx, input.ID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			h.log.Debug("record to delete not found", "record_id", input.ID)
			return &deleteOutput{
				Status: h.notFoundStatus,
				Body:   deleteResponse{Erro: notFoundMessage},
			}, nil
		}
		return nil, huma.Error500InternalServerError("failed to delete record", err)
	}

	return &deleteOutput{
		Status: http.StatusOK,
		Body:   deleteResponse{Mensagem: msg},
	}, nil
}
