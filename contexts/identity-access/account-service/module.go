package account

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	bcryptadapter "parley/contexts/identity-access/account-service/adapters/bcrypt"
	httpadapter "parley/contexts/identity-access/account-service/adapters/http"
	jwtadapter "parley/contexts/identity-access/account-service/adapters/jwt"
	"parley/contexts/identity-access/account-service/adapters/memory"
	"parley/contexts/identity-access/account-service/application"
	"parley/contexts/identity-access/account-service/ports"
)

// Module is the account-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenCodec
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the credential-verifier use-cases and transport handler
// using explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Hasher:      deps.Hasher,
		Tokens:      deps.Tokens,
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
// adapters and a minimum-cost hasher so test suites stay fast.
func NewInMemoryModule(tokenSecret string, logger *slog.Logger) Module {
	if tokenSecret == "" {
		tokenSecret = "parley-dev-secret"
	}
	store := memory.NewStore()
	codec, _ := jwtadapter.NewCodec(tokenSecret, 2*time.Hour)
	module := NewModule(Dependencies{
		Repository:  store,
		Hasher:      bcryptadapter.NewHasher(bcrypt.MinCost),
		Tokens:      codec,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
