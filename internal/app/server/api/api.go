// GET    /               # liveness
// POST   /tabela         # criar registro (?nome=&idade=)
// GET    /tabela         # listar registros
// PUT    /tabela/{id}    # atualizar registro (?nome=&idade=)
// DELETE /tabela/{id}    # deletar registro
// POST   /submit         # salvar JSON no S3 e notificar via SES

package api

import (
	healthAPI "tabela/internal/app/server/api/http/health"
	"tabela/internal/app/server/api/http/middleware"
	"tabela/internal/app/server/api/http/middleware/logger"
	"tabela/internal/app/server/api/http/middleware/ratelimit"
	recordAPI "tabela/internal/app/server/api/http/record"
	submissionAPI "tabela/internal/app/server/api/http/submission"
	"tabela/internal/domain/record"
	"tabela/internal/domain/submission"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Records record.Repository
	// Relay may be nil, in which case /submit is not registered.
	Relay submission.Servicer
	// Limiter may be nil, in which case requests are not rate limited.
	Limiter        *ratelimit.Limiter
	StrictNotFound bool
}

type Handlers struct {
	Health     *healthAPI.Handler
	Record     *recordAPI.Handler
	Submission *submissionAPI.Handler
}

// New builds the router with every operation registered through huma.Register
func New(deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.Recoverer)

	config := huma.DefaultConfig("Tabela API", "1.0.0")
	// Responses keep their plain shape without a $schema link.
	config.CreateHooks = nil

	API := humachi.New(mux, config)

	h := handlers(API, deps, log)
	h.Health.SetupRoutes(API)
	h.Record.SetupRoutes(API)
	if h.Submission != nil {
		h.Submission.SetupRoutes(API)
	}

	return mux
}

func handlers(api huma.API, deps Deps, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	var limitMW func(huma.Context, func(huma.Context))
	if deps.Limiter != nil {
		limitMW = deps.Limiter.Middleware(api)
	}

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	recordService := record.NewService(deps.Records, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(limitMW)
	recordHandler := recordAPI.NewHandler(recordService, log, middlewares.GetAllAndClear(), deps.StrictNotFound)

	var submissionHandler *submissionAPI.Handler
	if deps.Relay != nil {
		middlewares.Add(loggerMW.Middleware())
		middlewares.Add(limitMW)
		submissionHandler = submissionAPI.NewHandler(deps.Relay, log, middlewares.GetAllAndClear())
	}

	return &Handlers{
		Health:     healthHandler,
		Record:     recordHandler,
		Submission: submissionHandler,
	}
}
