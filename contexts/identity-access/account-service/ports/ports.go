package ports

import (
	"context"
	"time"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new user rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PasswordHasher is the one-way credential hashing primitive.
// Implementations must never make the plaintext recoverable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// Session is an issued bearer credential with its absolute expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// TokenCodec issues and verifies signed bearer tokens. The subject bound
// into the token is the user email; Verify returns it. Verification failure
// of any kind (malformed, expired, bad signature) is a single error class.
type TokenCodec interface {
	Issue(email string, now time.Time) (Session, error)
	Verify(token string, now time.Time) (string, error)
}

// User is the durable identity record.
type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserInput is persisted as a single users row.
type CreateUserInput struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Repository is the write/read boundary for identity state.
// InsertUser fails distinctly when the email is already taken.
type Repository interface {
	InsertUser(ctx context.Context, input CreateUserInput) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
}
