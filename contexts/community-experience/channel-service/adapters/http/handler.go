package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"parley/contexts/community-experience/channel-service/application"
	"parley/contexts/community-experience/channel-service/ports"
	httptransport "parley/contexts/community-experience/channel-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateChannelHandler(
	ctx context.Context,
	principalEmail string,
	req httptransport.CreateChannelRequest,
) (httptransport.CreateChannelResponse, error) {
	item, err := h.Service.CreateChannel(ctx, principalEmail, req.Name)
	if err != nil {
		return httptransport.CreateChannelResponse{}, err
	}
	resp := httptransport.CreateChannelResponse{Status: "success"}
	resp.Data.Channel = toChannelDTO(item)
	return resp, nil
}

func (h Handler) DeleteChannelHandler(
	ctx context.Context,
	principalEmail string,
	channelID string,
) (httptransport.DeleteChannelResponse, error) {
	if err := h.Service.DeleteChannel(ctx, principalEmail, channelID); err != nil {
		return httptransport.DeleteChannelResponse{}, err
	}
	resp := httptransport.DeleteChannelResponse{Status: "success"}
	resp.Data.ChannelID = channelID
	resp.Data.Deleted = true
	return resp, nil
}

func (h Handler) SubscribeHandler(
	ctx context.Context,
	principalEmail string,
	req httptransport.SubscribeRequest,
) (httptransport.SubscribeResponse, error) {
	membership, err := h.Service.Subscribe(ctx, principalEmail, req.ChannelID)
	if err != nil {
		return httptransport.SubscribeResponse{}, err
	}
	resp := httptransport.SubscribeResponse{Status: "success"}
	resp.Data.Membership = httptransport.MembershipDTO{
		UserID:       membership.UserID,
		ChannelID:    membership.ChannelID,
		SubscribedAt: membership.CreatedAt.UTC().Format(time.RFC3339),
	}
	return resp, nil
}

func (h Handler) PostMessageHandler(
	ctx context.Context,
	principalEmail string,
	channelID string,
	req httptransport.PostMessageRequest,
) (httptransport.PostMessageResponse, error) {
	item, err := h.Service.PostMessage(ctx, principalEmail, channelID, req.Content)
	if err != nil {
		return httptransport.PostMessageResponse{}, err
	}
	resp := httptransport.PostMessageResponse{Status: "success"}
	resp.Data.Message = toMessageDTO(item)
	return resp, nil
}

func (h Handler) ListMessagesHandler(
	ctx context.Context,
	principalEmail string,
	channelID string,
) (httptransport.ListMessagesResponse, error) {
	items, err := h.Service.ListMessages(ctx, principalEmail, channelID)
	if err != nil {
		return httptransport.ListMessagesResponse{}, err
	}
	resp := httptransport.ListMessagesResponse{Status: "success"}
	resp.Data.Messages = make([]httptransport.MessageDTO, 0, len(items))
	for _, item := range items {
		dto := toMessageDTO(item.Message)
		dto.AuthorName = item.AuthorName
		resp.Data.Messages = append(resp.Data.Messages, dto)
	}
	return resp, nil
}

func (h Handler) EditMessageHandler(
	ctx context.Context,
	principalEmail string,
	channelID string,
	messageID string,
	req httptransport.EditMessageRequest,
) (httptransport.EditMessageResponse, error) {
	item, err := h.Service.EditMessage(ctx, principalEmail, channelID, messageID, req.Content)
	if err != nil {
		return httptransport.EditMessageResponse{}, err
	}
	resp := httptransport.EditMessageResponse{Status: "success"}
	resp.Data.Message = toMessageDTO(item)
	return resp, nil
}

func (h Handler) DeleteMessageHandler(
	ctx context.Context,
	principalEmail string,
	channelID string,
	messageID string,
) (httptransport.DeleteMessageResponse, error) {
	item, err := h.Service.DeleteMessage(ctx, principalEmail, channelID, messageID)
	if err != nil {
		return httptransport.DeleteMessageResponse{}, err
	}
	resp := httptransport.DeleteMessageResponse{Status: "success"}
	resp.Data.MessageID = item.MessageID
	resp.Data.Deleted = true
	return resp, nil
}

func toChannelDTO(item ports.Channel) httptransport.ChannelDTO {
	return httptransport.ChannelDTO{
		ChannelID: item.ChannelID,
		Name:      item.Name,
		OwnerID:   item.OwnerID,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toMessageDTO(item ports.Message) httptransport.MessageDTO {
	dto := httptransport.MessageDTO{
		MessageID: item.MessageID,
		ChannelID: item.ChannelID,
		AuthorID:  item.AuthorID,
		Content:   item.Content,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !item.UpdatedAt.IsZero() && !item.UpdatedAt.Equal(item.CreatedAt) {
		dto.UpdatedAt = item.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
