package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	channel "parley/contexts/community-experience/channel-service"
	channelpostgres "parley/contexts/community-experience/channel-service/adapters/postgres"
	channelports "parley/contexts/community-experience/channel-service/ports"
	account "parley/contexts/identity-access/account-service"
	bcryptadapter "parley/contexts/identity-access/account-service/adapters/bcrypt"
	jwtadapter "parley/contexts/identity-access/account-service/adapters/jwt"
	accountpostgres "parley/contexts/identity-access/account-service/adapters/postgres"
	"parley/internal/platform/config"
	"parley/internal/platform/db"
	"parley/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	tokens, err := jwtadapter.NewCodec(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	accountRepo := accountpostgres.NewRepository(pg.DB, logger)
	accountModule := account.NewModule(account.Dependencies{
		Repository:  accountRepo,
		Hasher:      bcryptadapter.NewHasher(cfg.BcryptCost),
		Tokens:      tokens,
		Clock:       accountpostgres.SystemClock{},
		IDGenerator: accountpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	channelRepo := channelpostgres.NewRepository(pg.DB, logger)
	channelModule := channel.NewModule(channel.Dependencies{
		Repository: channelRepo,
		Principals: channelports.PrincipalResolverFunc(
			func(ctx context.Context, email string) (channelports.User, error) {
				user, err := accountModule.Service.ResolveUser(ctx, email)
				if err != nil {
					return channelports.User{}, err
				}
				return channelports.User{
					UserID: user.UserID,
					Name:   user.Name,
					Email:  user.Email,
				}, nil
			},
		),
		Clock:       channelpostgres.SystemClock{},
		IDGenerator: channelpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(accountModule, channelModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run() error {
	return a.server.Start()
}

func (a *APIApp) Close() error {
	return a.postgres.Close()
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
