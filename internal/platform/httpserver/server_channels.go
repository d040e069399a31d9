package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	channelerrors "parley/contexts/community-experience/channel-service/domain/errors"
	channelhttp "parley/contexts/community-experience/channel-service/transport/http"
	accounterrors "parley/contexts/identity-access/account-service/domain/errors"
)

// requireChannelPrincipal resolves the bearer token to a verified subject
// email. Every channel/message route funnels through here so missing and
// invalid credentials get one uniform 401.
func (s *Server) requireChannelPrincipal(w http.ResponseWriter, r *http.Request) (string, bool) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeChannelError(w, http.StatusUnauthorized, "unauthenticated", "Authorization bearer token is required")
		return "", false
	}

	email, err := s.accounts.Service.Authenticate(r.Context(), strings.TrimSpace(parts[1]))
	if err != nil {
		writeChannelError(w, http.StatusUnauthorized, "unauthenticated", "bearer token is invalid or expired")
		return "", false
	}
	return email, true
}

// handleCreateChannel godoc
//
//	@Summary	Create a channel owned by the caller
//	@Tags		channels
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		channelhttp.CreateChannelRequest	true	"channel fields"
//	@Success	201		{object}	channelhttp.CreateChannelResponse
//	@Router		/channels [post]
func (s *Server) handleCreateChannel(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requireChannelPrincipal(w, r)
	if !ok {
		return
	}

	var req channelhttp.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChannelError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.channels.Handler.CreateChannelHandler(r.Context(), principal, req)
	if err != nil {
		writeChannelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleDeleteChannel godoc
//
//	@Summary	Delete an owned channel and cascade its messages and memberships
//	@Tags		channels
//	@Produce	json
//	@Security	BearerAuth
//	@Param		channel_id	path		string	true	"channel id"
//	@Success	200			{object}	channelhttp.DeleteChannelResponse
//	@Router		/channels/{channel_id} [delete]
func (s *Server) handleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requireChannelPrincipal(w, r)
	if !ok {
		return
	}

	resp, err := s.channels.Handler.DeleteChannelHandler(r.Context(), principal, r.PathValue("channel_id"))
	if err != nil {
		writeChannelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSubscribe godoc
//
//	@Summary	Subscribe the caller to a channel
//	@Tags		channels
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		channelhttp.SubscribeRequest	true	"target channel"
//	@Success	201		{object}	channelhttp.SubscribeResponse
//	@Router		/channels/subscribe [post]
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requireChannelPrincipal(w, r)
	if !ok {
		return
	}

	var req channelhttp.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChannelError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.channels.Handler.SubscribeHandler(r.Context(), principal, req)
	if err != nil {
		writeChannelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handlePostMessage godoc
//
//	@Summary	Post a message to a channel
//	@Tags		messages
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		channel_id	path		string							true	"channel id"
//	@Param		request		body		channelhttp.PostMessageRequest	true	"message content"
//	@Success	201			{object}	channelhttp.PostMessageResponse
//	@Router		/channels/{channel_id}/messages [post]
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requireChannelPrincipal(w, r)
	if !ok {
		return
	}

	var req channelhttp.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChannelError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.channels.Handler.PostMessageHandler(r.Context(), principal, r.PathValue("channel_id"), req)
	if err != nil {
		writeChannelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleListMessages godoc
//
//	@Summary	List a channel's messages with author names
//	@Tags		messages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		channel_id	path		string	true	"channel id"
//	@Success	200			{object}	channelhttp.ListMessagesResponse
//	@Router		/channels/{channel_id}/messages [get]
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requireChannelPrincipal(w, r)
	if !ok {
		return
	}

	resp, err := s.channels.Handler.ListMessagesHandler(r.Context(), principal, r.PathValue("channel_id"))
	if err != nil {
		writeChannelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleEditMessage godoc
//
//	@Summary	Edit an authored message's content
//	@Tags		messages
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		channel_id	path		string							true	"channel id"
//	@Param		message_id	path		string							true	"message id"
//	@Param		request		body		channelhttp.EditMessageRequest	true	"replacement content"
//	@Success	200			{object}	channelhttp.EditMessageResponse
//	@Router		/channels/{channel_id}/messages/{message_id} [put]
func (s *Server) handleEditMessage(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requireChannelPrincipal(w, r)
	if !ok {
		return
	}

	var req channelhttp.EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChannelError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.channels.Handler.EditMessageHandler(
		r.Context(),
		principal,
		r.PathValue("channel_id"),
		r.PathValue("message_id"),
		req,
	)
	if err != nil {
		writeChannelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDeleteMessage godoc
//
//	@Summary	Delete a message as its author or the channel owner
//	@Tags		messages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		channel_id	path		string	true	"channel id"
//	@Param		message_id	path		string	true	"message id"
//	@Success	200			{object}	channelhttp.DeleteMessageResponse
//	@Router		/channels/{channel_id}/messages/{message_id} [delete]
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requireChannelPrincipal(w, r)
	if !ok {
		return
	}

	resp, err := s.channels.Handler.DeleteMessageHandler(
		r.Context(),
		principal,
		r.PathValue("channel_id"),
		r.PathValue("message_id"),
	)
	if err != nil {
		writeChannelDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeChannelDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, channelerrors.ErrInvalidRequest):
		writeChannelError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, channelerrors.ErrChannelNotFound):
		writeChannelError(w, http.StatusNotFound, "channel_not_found", err.Error())
	case errors.Is(err, channelerrors.ErrMessageNotFound):
		writeChannelError(w, http.StatusNotFound, "message_not_found", err.Error())
	case errors.Is(err, channelerrors.ErrAlreadySubscribed):
		writeChannelError(w, http.StatusConflict, "already_subscribed", err.Error())
	case errors.Is(err, channelerrors.ErrForbidden):
		writeChannelError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, accounterrors.ErrUserNotFound):
		writeChannelError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, accounterrors.ErrUnauthenticated):
		writeChannelError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	default:
		writeChannelError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeChannelError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, channelhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
