// Package app assembles the services of the bank API from their
// dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/bankapi/pkg/config"
	"github.com/amirasaad/bankapi/pkg/metrics"
	"github.com/amirasaad/bankapi/pkg/repository"
	"github.com/amirasaad/bankapi/pkg/service/account"
	"github.com/amirasaad/bankapi/pkg/service/auth"
	"github.com/amirasaad/bankapi/pkg/service/transaction"
	"github.com/amirasaad/bankapi/pkg/service/user"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps contains all the dependencies needed to build the services
type Deps struct {
	Uow     repository.UnitOfWork
	Metrics metrics.Collector
	// Gatherer backs the /metrics endpoint. Nil means the default registry.
	Gatherer prometheus.Gatherer
	// RateLimitStorage is shared rate limiter state. Nil keeps the
	// limiter's in-process store.
	RateLimitStorage fiber.Storage
	Logger           *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	Tokens             *auth.TokenService
	AuthService        *auth.Service
	UserService        *user.Service
	AccountService     *account.Service
	Ledger             *account.Ledger
	TransactionService *transaction.Processor
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NoOpCollector{}
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.Tokens = auth.NewTokenService(cfg.Auth.Jwt)
	app.UserService = user.New(deps.Uow, deps.Logger)
	app.AuthService = auth.New(app.UserService, app.Tokens, deps.Metrics, deps.Logger)
	app.AccountService = account.NewService(deps.Uow, cfg.DefaultCurrency, deps.Logger)
	app.Ledger = account.NewLedger(deps.Uow, deps.Metrics, deps.Logger)
	app.TransactionService = transaction.NewProcessor(deps.Uow, app.Ledger, deps.Metrics, deps.Logger)
	return app
}
