package channel

import (
	"log/slog"

	httpadapter "parley/contexts/community-experience/channel-service/adapters/http"
	"parley/contexts/community-experience/channel-service/adapters/memory"
	"parley/contexts/community-experience/channel-service/application"
	"parley/contexts/community-experience/channel-service/ports"
)

// Module is the channel-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Principals  ports.PrincipalResolver
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the channel/message use-cases and transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Principals:  deps.Principals,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. Principal resolution stays a caller-supplied port so tests wire
// it to an account-service module.
func NewInMemoryModule(principals ports.PrincipalResolver, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Principals:  principals,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
