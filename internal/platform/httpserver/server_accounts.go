package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	accounterrors "parley/contexts/identity-access/account-service/domain/errors"
	accounthttp "parley/contexts/identity-access/account-service/transport/http"
)

// handleRegister godoc
//
//	@Summary	Register a new user
//	@Tags		accounts
//	@Accept		json
//	@Produce	json
//	@Param		request	body		accounthttp.RegisterRequest	true	"registration fields"
//	@Success	201		{object}	accounthttp.RegisterResponse
//	@Router		/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleLogin godoc
//
//	@Summary	Exchange credentials for a bearer token
//	@Tags		accounts
//	@Accept		json
//	@Produce	json
//	@Param		request	body		accounthttp.LoginRequest	true	"login credentials"
//	@Success	200		{object}	accounthttp.LoginResponse
//	@Router		/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAccountDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrInvalidRequest):
		writeAccountError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, accounterrors.ErrEmailAlreadyRegistered):
		writeAccountError(w, http.StatusConflict, "email_already_registered", err.Error())
	case errors.Is(err, accounterrors.ErrUserNotFound):
		writeAccountError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, accounterrors.ErrInvalidCredentials):
		writeAccountError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, accounterrors.ErrUnauthenticated):
		writeAccountError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	default:
		writeAccountError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccountError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accounthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
