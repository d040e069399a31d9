package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "parley/contexts/identity-access/account-service/domain/errors"
	"parley/contexts/identity-access/account-service/ports"
)

type Service struct {
	Repo        ports.Repository
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenCodec
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// RegisterInput carries the raw registration fields. The plaintext password
// never leaves this use-case: only its hash is handed to the repository.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s Service) Register(ctx context.Context, input RegisterInput) (ports.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return ports.User{}, domainerrors.ErrInvalidRequest
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return ports.User{}, err
	}

	userID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.User{}, err
	}

	user, err := s.Repo.InsertUser(ctx, ports.CreateUserInput{
		UserID:       userID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return ports.User{}, err
	}

	resolveLogger(s.Logger).Info("user registered",
		"event", "account_user_registered",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return user, nil
}

func (s Service) Login(ctx context.Context, email string, password string) (ports.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return ports.Session{}, domainerrors.ErrInvalidRequest
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		return ports.Session{}, err
	}
	if err := s.Hasher.Compare(user.PasswordHash, password); err != nil {
		return ports.Session{}, domainerrors.ErrInvalidCredentials
	}

	session, err := s.Tokens.Issue(user.Email, s.now())
	if err != nil {
		return ports.Session{}, err
	}

	resolveLogger(s.Logger).Info("user logged in",
		"event", "account_user_logged_in",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return session, nil
}

// Authenticate resolves a bearer token to its subject email. Every
// verification failure collapses into ErrUnauthenticated so callers cannot
// distinguish expired from forged credentials.
func (s Service) Authenticate(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", domainerrors.ErrUnauthenticated
	}
	email, err := s.Tokens.Verify(token, s.now())
	if err != nil {
		return "", domainerrors.ErrUnauthenticated
	}
	return email, nil
}

// ResolveUser looks up the durable identity behind a verified subject email.
func (s Service) ResolveUser(ctx context.Context, email string) (ports.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return ports.User{}, domainerrors.ErrUserNotFound
	}
	return s.Repo.FindUserByEmail(ctx, email)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
