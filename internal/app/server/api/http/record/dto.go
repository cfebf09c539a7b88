package record

import (
	"tabela/internal/domain/record"
)

const notFoundMessage = "Registro não encontrado"

type listOutput struct {
	Body []record.Record
}

type createInput struct {
	Name string `query:"nome" required:"true" example:"Ana" doc:"Nome"`
	Age  int    `query:"idade" required:"true" example:"30" doc:"Idade"`
}

type recordOutput struct {
	Body *record.Record
}

type updateInput struct {
	ID   int    `path:"id" example:"1" doc:"ID do registro"`
	Name string `query:"nome" required:"true" example:"Ana" doc:"Nome"`
	Age  int    `query:"idade" required:"true" example:"30" doc:"Idade"`
}

type deleteInput struct {
	ID int `path:"id" example:"1" doc:"ID do registro"`
}

type updateOutput struct {
	Status int
	Body   updateResponse
}

// updateResponse is either the updated record or an error object.
type updateResponse struct {
	ID   *int    `json:"id,omitempty"`
	Name *string `json:"nome,omitempty"`
	Age  *int    `json:"idade,omitempty"`
	Erro string  `json:"erro,omitempty" example:"Registro não encontrado"`
}

type deleteOutput struct {
	Status int
	Body   deleteResponse
}

type deleteResponse struct {
	Mensagem string `json:"mensagem,omitempty" example:"Registro 1 deletado com sucesso"`
	Erro     string `json:"erro,omitempty" example:"Registro não encontrado"`
}

func recordResponse(rec *record.Record) updateResponse {
	return updateResponse{
		ID:   &rec.ID,
		Name: &rec.Name,
		Age:  &rec.Age,
	}
}
