package router

import (
	"kayak/internal/handlers/transaction"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Transaction transaction.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Transaction.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
