package unit

import (
	"context"
	"errors"
	"testing"

	channelservice "parley/contexts/community-experience/channel-service"
	channeldomainerrors "parley/contexts/community-experience/channel-service/domain/errors"
	channelports "parley/contexts/community-experience/channel-service/ports"
	channelhttp "parley/contexts/community-experience/channel-service/transport/http"
	accountservice "parley/contexts/identity-access/account-service"
	accounthttp "parley/contexts/identity-access/account-service/transport/http"
)

func newModules() (accountservice.Module, channelservice.Module) {
	accounts := accountservice.NewInMemoryModule("", nil)
	channels := channelservice.NewInMemoryModule(channelports.PrincipalResolverFunc(
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
	), nil)
	return accounts, channels
}

func registerUser(t *testing.T, accounts accountservice.Module, name string, email string) {
	t.Helper()
	_, err := accounts.Handler.RegisterHandler(context.Background(), accounthttp.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "pw-123456",
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", email, err)
	}
}

func TestTwoUserMessagingScenario(t *testing.T) {
	accounts, channels := newModules()
	ctx := context.Background()
	registerUser(t, accounts, "Alice", "alice@example.com")
	registerUser(t, accounts, "Bob", "bob@example.com")

	created, err := channels.Handler.CreateChannelHandler(ctx, "alice@example.com", channelhttp.CreateChannelRequest{
		Name: "general",
	})
	if err != nil {
		t.Fatalf("create channel failed: %v", err)
	}
	channelID := created.Data.Channel.ChannelID

	if _, err := channels.Handler.SubscribeHandler(ctx, "bob@example.com", channelhttp.SubscribeRequest{
		ChannelID: channelID,
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if _, err := channels.Handler.PostMessageHandler(ctx, "alice@example.com", channelID, channelhttp.PostMessageRequest{
		Content: "welcome",
	}); err != nil {
		t.Fatalf("alice post failed: %v", err)
	}
	bobPost, err := channels.Handler.PostMessageHandler(ctx, "bob@example.com", channelID, channelhttp.PostMessageRequest{
		Content: "thanks",
	})
	if err != nil {
		t.Fatalf("bob post failed: %v", err)
	}
	bobMessageID := bobPost.Data.Message.MessageID

	edited, err := channels.Handler.EditMessageHandler(ctx, "bob@example.com", channelID, bobMessageID, channelhttp.EditMessageRequest{
		Content: "thanks, glad to be here",
	})
	if err != nil {
		t.Fatalf("bob edit failed: %v", err)
	}
	if edited.Data.Message.Content != "thanks, glad to be here" {
		t.Fatalf("unexpected edited content %q", edited.Data.Message.Content)
	}

	// Alice deletes Bob's message as channel owner.
	if _, err := channels.Handler.DeleteMessageHandler(ctx, "alice@example.com", channelID, bobMessageID); err != nil {
		t.Fatalf("owner delete message failed: %v", err)
	}

	listed, err := channels.Handler.ListMessagesHandler(ctx, "bob@example.com", channelID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed.Data.Messages) != 1 {
		t.Fatalf("expected 1 remaining message, got %d", len(listed.Data.Messages))
	}
	if listed.Data.Messages[0].AuthorName != "Alice" {
		t.Fatalf("expected Alice's message to remain, got author %q", listed.Data.Messages[0].AuthorName)
	}

	if _, err := channels.Handler.DeleteChannelHandler(ctx, "bob@example.com", channelID); !errors.Is(err, channeldomainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for bob's channel delete, got %v", err)
	}
	if _, err := channels.Handler.DeleteChannelHandler(ctx, "alice@example.com", channelID); err != nil {
		t.Fatalf("alice channel delete failed: %v", err)
	}
	if _, err := channels.Handler.ListMessagesHandler(ctx, "alice@example.com", channelID); !errors.Is(err, channeldomainerrors.ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound after cascade, got %v", err)
	}
}
