package ports

import (
	"context"
	"time"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for channel/message rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// User is the identity projection this context needs: never the credential
// hash, only the durable id and display name.
type User struct {
	UserID string
	Name   string
	Email  string
}

// PrincipalResolver turns a verified subject email into a durable identity.
// It is backed by the account-service in runtime wiring.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, email string) (User, error)
}

// PrincipalResolverFunc adapts a function to the PrincipalResolver port.
type PrincipalResolverFunc func(ctx context.Context, email string) (User, error)

func (f PrincipalResolverFunc) ResolvePrincipal(ctx context.Context, email string) (User, error) {
	return f(ctx, email)
}

// Channel has exactly one owner, fixed at creation.
type Channel struct {
	ChannelID string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

// Membership is the (user, channel) subscription relation. Pairs are unique.
type Membership struct {
	UserID    string
	ChannelID string
	CreatedAt time.Time
}

// Message is scoped to one channel and authored by one user; author and
// channel are immutable after creation.
type Message struct {
	MessageID string
	ChannelID string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChannelMessage is a message joined with its author's display name for
// channel reads.
type ChannelMessage struct {
	Message
	AuthorName string
}

// CreateChannelInput is persisted as a channel row plus the owner's
// membership row in one atomic write.
type CreateChannelInput struct {
	ChannelID string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

// CreateMessageInput is persisted as a single messages row. AuthorName is
// carried for read-side projection only and is never stored on the message.
type CreateMessageInput struct {
	MessageID  string
	ChannelID  string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}

// Repository is the write/read boundary for channel domain state.
//
// InsertMembership fails distinctly on a duplicate (user, channel) pair.
// DeleteChannelCascade removes messages, memberships, and the channel row in
// one transaction so readers never observe a partially deleted channel.
type Repository interface {
	InsertChannel(ctx context.Context, input CreateChannelInput) (Channel, error)
	FindChannelByID(ctx context.Context, channelID string) (Channel, error)
	DeleteChannelCascade(ctx context.Context, channelID string) error

	InsertMembership(ctx context.Context, userID string, channelID string, now time.Time) (Membership, error)
	FindMembership(ctx context.Context, userID string, channelID string) (Membership, bool, error)

	InsertMessage(ctx context.Context, input CreateMessageInput) (Message, error)
	FindMessage(ctx context.Context, messageID string, channelID string) (Message, error)
	UpdateMessageContent(ctx context.Context, messageID string, content string, now time.Time) (Message, error)
	DeleteMessage(ctx context.Context, messageID string) error
	ListMessagesByChannel(ctx context.Context, channelID string) ([]ChannelMessage, error)
}
