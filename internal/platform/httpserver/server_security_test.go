package httpserver

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	channel "parley/contexts/community-experience/channel-service"
	channelports "parley/contexts/community-experience/channel-service/ports"
	account "parley/contexts/identity-access/account-service"
)

func newTestServer() *Server {
	accounts := account.NewInMemoryModule("", slog.Default())
	channels := channel.NewInMemoryModule(channelports.PrincipalResolverFunc(
		func(ctx context.Context, email string) (channelports.User, error) {
			user, err := accounts.Service.ResolveUser(ctx, email)
			if err != nil {
				return channelports.User{}, err
			}
			return channelports.User{
				UserID: user.UserID,
				Name:   user.Name,
				Email:  user.Email,
			}, nil
		},
	), slog.Default())
	return New(accounts, channels, slog.Default(), ":0")
}

func TestChannelRoutesRequireAuthorization(t *testing.T) {
	server := newTestServer()

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/channels", `{"name":"general"}`},
		{http.MethodDelete, "/channels/ch-1", ""},
		{http.MethodPost, "/channels/subscribe", `{"channel_id":"ch-1"}`},
		{http.MethodPost, "/channels/ch-1/messages", `{"content":"hello"}`},
		{http.MethodGet, "/channels/ch-1/messages", ""},
		{http.MethodPut, "/channels/ch-1/messages/msg-1", `{"content":"hello"}`},
		{http.MethodDelete, "/channels/ch-1/messages/msg-1", ""},
	}
	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, bytes.NewReader([]byte(route.body)))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d body=%s", route.method, route.path, rr.Code, rr.Body.String())
		}
	}
}

func TestChannelRoutesRejectForgedToken(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/channels", bytes.NewReader([]byte(`{"name":"general"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestChannelRoutesRejectMalformedAuthorizationHeader(t *testing.T) {
	server := newTestServer()

	for _, header := range []string{"token-without-scheme", "Basic abc123", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/channels/ch-1/messages", nil)
		req.Header.Set("Authorization", header)

		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rr.Code)
		}
	}
}

func TestRegisterRejectsMalformedJSON(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte(`{"name":`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d body=%s", rr.Code, rr.Body.String())
	}
}
