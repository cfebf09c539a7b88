package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID:   "tabela-list",
		Method:        http.MethodGet,
		Path:          "/tabela",
		Summary:       "Listar registros",
		Tags:          []string{"tabela"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "tabela-create",
		Method:        http.MethodPost,
		Path:          "/tabela",
		Summary:       "Criar registro",
		Description:   "Cria um novo registro com nome e idade informados e retorna o registro com o ID gerado.",
		Tags:          []string{"tabela"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID:   "tabela-update",
		Method:        http.MethodPut,
		Path:          "/tabela/{id}",
		Summary:       "Atualizar registro",
		Description:   "Substitui nome e idade de um registro existente. Um ID inexistente retorna {\"erro\": ...}.",
		Tags:          []string{"tabela"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "tabela-delete",
		Method:        http.MethodDelete,
		Path:          "/tabela/{id}",
		Summary:       "Deletar registro",
		Tags:          []string{"tabela"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}
