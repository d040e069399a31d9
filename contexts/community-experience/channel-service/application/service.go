package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "parley/contexts/community-experience/channel-service/domain/errors"
	"parley/contexts/community-experience/channel-service/domain/policy"
	"parley/contexts/community-experience/channel-service/ports"
)

// Service orchestrates every channel and message operation with the same
// sequencing: resolve principal, check existence, decide policy, mutate.
type Service struct {
	Repo        ports.Repository
	Principals  ports.PrincipalResolver
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) CreateChannel(ctx context.Context, principalEmail string, name string) (ports.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.Channel{}, domainerrors.ErrInvalidRequest
	}
	user, err := s.Principals.ResolvePrincipal(ctx, principalEmail)
	if err != nil {
		return ports.Channel{}, err
	}
	if err := policy.Decide(policy.OpCreateChannel, policy.Facts{}); err != nil {
		return ports.Channel{}, err
	}

	channelID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Channel{}, err
	}
	item, err := s.Repo.InsertChannel(ctx, ports.CreateChannelInput{
		ChannelID: channelID,
		Name:      name,
		OwnerID:   user.UserID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return ports.Channel{}, err
	}

	resolveLogger(s.Logger).Info("channel created",
		"event", "channel_created",
		"module", "community-experience/channel-service",
		"layer", "application",
		"channel_id", item.ChannelID,
		"owner_id", item.OwnerID,
	)
	return item, nil
}

func (s Service) DeleteChannel(ctx context.Context, principalEmail string, channelID string) error {
	user, err := s.Principals.ResolvePrincipal(ctx, principalEmail)
	if err != nil {
		return err
	}
	item, err := s.Repo.FindChannelByID(ctx, channelID)
	if err != nil {
		return err
	}
	if err := policy.Decide(policy.OpDeleteChannel, policy.Facts{
		Owner: item.OwnerID == user.UserID,
	}); err != nil {
		return err
	}

	if err := s.Repo.DeleteChannelCascade(ctx, item.ChannelID); err != nil {
		return err
	}

	resolveLogger(s.Logger).Info("channel deleted",
		"event", "channel_deleted",
		"module", "community-experience/channel-service",
		"layer", "application",
		"channel_id", item.ChannelID,
	)
	return nil
}

func (s Service) Subscribe(ctx context.Context, principalEmail string, channelID string) (ports.Membership, error) {
	user, err := s.Principals.ResolvePrincipal(ctx, principalEmail)
	if err != nil {
		return ports.Membership{}, err
	}
	item, err := s.Repo.FindChannelByID(ctx, channelID)
	if err != nil {
		return ports.Membership{}, err
	}
	if err := policy.Decide(policy.OpSubscribe, policy.Facts{}); err != nil {
		return ports.Membership{}, err
	}

	membership, err := s.Repo.InsertMembership(ctx, user.UserID, item.ChannelID, s.now())
	if err != nil {
		return ports.Membership{}, err
	}

	resolveLogger(s.Logger).Info("user subscribed to channel",
		"event", "channel_subscribed",
		"module", "community-experience/channel-service",
		"layer", "application",
		"channel_id", item.ChannelID,
		"user_id", user.UserID,
	)
	return membership, nil
}

func (s Service) PostMessage(ctx context.Context, principalEmail string, channelID string, content string) (ports.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return ports.Message{}, domainerrors.ErrInvalidRequest
	}
	user, err := s.Principals.ResolvePrincipal(ctx, principalEmail)
	if err != nil {
		return ports.Message{}, err
	}
	item, err := s.Repo.FindChannelByID(ctx, channelID)
	if err != nil {
		return ports.Message{}, err
	}
	facts, err := s.channelFacts(ctx, item, user)
	if err != nil {
		return ports.Message{}, err
	}
	if err := policy.Decide(policy.OpPostMessage, facts); err != nil {
		return ports.Message{}, err
	}

	messageID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Message{}, err
	}
	return s.Repo.InsertMessage(ctx, ports.CreateMessageInput{
		MessageID:  messageID,
		ChannelID:  item.ChannelID,
		AuthorID:   user.UserID,
		AuthorName: user.Name,
		Content:    content,
		CreatedAt:  s.now(),
	})
}

func (s Service) ListMessages(ctx context.Context, principalEmail string, channelID string) ([]ports.ChannelMessage, error) {
	user, err := s.Principals.ResolvePrincipal(ctx, principalEmail)
	if err != nil {
		return nil, err
	}
	item, err := s.Repo.FindChannelByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	facts, err := s.channelFacts(ctx, item, user)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(policy.OpReadMessages, facts); err != nil {
		return nil, err
	}
	return s.Repo.ListMessagesByChannel(ctx, item.ChannelID)
}

func (s Service) EditMessage(
	ctx context.Context,
	principalEmail string,
	channelID string,
	messageID string,
	content string,
) (ports.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return ports.Message{}, domainerrors.ErrInvalidRequest
	}
	user, err := s.Principals.ResolvePrincipal(ctx, principalEmail)
	if err != nil {
		return ports.Message{}, err
	}
	item, err := s.Repo.FindMessage(ctx, messageID, channelID)
	if err != nil {
		return ports.Message{}, err
	}
	if err := policy.Decide(policy.OpEditMessage, policy.Facts{
		Author: item.AuthorID == user.UserID,
	}); err != nil {
		return ports.Message{}, err
	}
	return s.Repo.UpdateMessageContent(ctx, item.MessageID, content, s.now())
}

func (s Service) DeleteMessage(
	ctx context.Context,
	principalEmail string,
	channelID string,
	messageID string,
) (ports.Message, error) {
	user, err := s.Principals.ResolvePrincipal(ctx, principalEmail)
	if err != nil {
		return ports.Message{}, err
	}
	item, err := s.Repo.FindMessage(ctx, messageID, channelID)
	if err != nil {
		return ports.Message{}, err
	}
	parent, err := s.Repo.FindChannelByID(ctx, item.ChannelID)
	if err != nil {
		return ports.Message{}, err
	}
	if err := policy.Decide(policy.OpDeleteMessage, policy.Facts{
		Author: item.AuthorID == user.UserID,
		Owner:  parent.OwnerID == user.UserID,
	}); err != nil {
		return ports.Message{}, err
	}

	if err := s.Repo.DeleteMessage(ctx, item.MessageID); err != nil {
		return ports.Message{}, err
	}

	resolveLogger(s.Logger).Info("message deleted",
		"event", "channel_message_deleted",
		"module", "community-experience/channel-service",
		"layer", "application",
		"channel_id", item.ChannelID,
		"message_id", item.MessageID,
	)
	return item, nil
}

// channelFacts reads the role relations fresh for the current request. The
// membership lookup runs even for owners so the decision never depends on
// stale role state.
func (s Service) channelFacts(ctx context.Context, item ports.Channel, user ports.User) (policy.Facts, error) {
	_, subscribed, err := s.Repo.FindMembership(ctx, user.UserID, item.ChannelID)
	if err != nil {
		return policy.Facts{}, err
	}
	return policy.Facts{
		Owner:      item.OwnerID == user.UserID,
		Subscriber: subscribed,
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
