package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"parley/contexts/identity-access/account-service/application"
	httptransport "parley/contexts/identity-access/account-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(
	ctx context.Context,
	req httptransport.RegisterRequest,
) (httptransport.RegisterResponse, error) {
	user, err := h.Service.Register(ctx, application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	resp := httptransport.RegisterResponse{Status: "success"}
	resp.Data.User = httptransport.UserDTO{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
	return resp, nil
}

func (h Handler) LoginHandler(
	ctx context.Context,
	req httptransport.LoginRequest,
) (httptransport.LoginResponse, error) {
	session, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	resp := httptransport.LoginResponse{Status: "success"}
	resp.Data.Token = session.Token
	resp.Data.ExpiresAt = session.ExpiresAt.UTC().Format(time.RFC3339)
	return resp, nil
}
