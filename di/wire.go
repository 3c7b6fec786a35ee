//go:build wireinject
// +build wireinject

package di

import (
	"kayak/config"
	"kayak/infras/kafka"
	"kayak/infras/otel"
	"kayak/infras/postgres"
	"kayak/infras/redis"
	"kayak/infras/s3"
	transactionHandler "kayak/internal/handlers/transaction"
	"kayak/scheduler"
	"kayak/shared/cache"
	"kayak/transport/http"
	"kayak/transport/http/middleware"
	"kayak/transport/http/router"

	transactionRepository "kayak/internal/domains/transaction/repository"
	transactionService "kayak/internal/domains/transaction/service"

	"github.com/google/wire"
)

// App bundles everything the entrypoint has to start.
type App struct {
	HTTP      *http.HTTP
	Scheduler *scheduler.Scheduler
}

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var transactionDomain = wire.NewSet(
	transactionRepository.New,
	transactionService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	transactionHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		transactionDomain,
		routing,
		http.New,
		scheduler.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
