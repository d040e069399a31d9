package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	channel "parley/contexts/community-experience/channel-service"
	account "parley/contexts/identity-access/account-service"
	_ "parley/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	accounts account.Module
	channels channel.Module
}

func New(
	accounts account.Module,
	channels channel.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		accounts: accounts,
		channels: channels,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /register", s.handleRegister)
	s.mux.HandleFunc("POST /login", s.handleLogin)

	s.mux.HandleFunc("POST /channels", s.handleCreateChannel)
	s.mux.HandleFunc("DELETE /channels/{channel_id}", s.handleDeleteChannel)
	s.mux.HandleFunc("POST /channels/subscribe", s.handleSubscribe)
	s.mux.HandleFunc("POST /channels/{channel_id}/messages", s.handlePostMessage)
	s.mux.HandleFunc("GET /channels/{channel_id}/messages", s.handleListMessages)
	s.mux.HandleFunc("PUT /channels/{channel_id}/messages/{message_id}", s.handleEditMessage)
	s.mux.HandleFunc("DELETE /channels/{channel_id}/messages/{message_id}", s.handleDeleteMessage)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
