package record

// Record is a row of the tabela table. Values returned by the service are
// snapshots; mutating them does not touch the store.
type Record struct {
	ID   int    `json:"id" example:"1" doc:"ID do registro"`
	Name string `json:"nome" example:"Ana" doc:"Nome"`
	Age  int    `json:"idade" example:"30" doc:"Idade"`
}
