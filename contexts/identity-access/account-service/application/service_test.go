package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	bcryptadapter "parley/contexts/identity-access/account-service/adapters/bcrypt"
	jwtadapter "parley/contexts/identity-access/account-service/adapters/jwt"
	"parley/contexts/identity-access/account-service/adapters/memory"
	"parley/contexts/identity-access/account-service/application"
	domainerrors "parley/contexts/identity-access/account-service/domain/errors"
)

// fixedClock pins time so token expiry is deterministic.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newTestService(t *testing.T, clock *fixedClock, tokenTTL time.Duration) application.Service {
	t.Helper()
	codec, err := jwtadapter.NewCodec("test-secret", tokenTTL)
	if err != nil {
		t.Fatalf("build token codec: %v", err)
	}
	store := memory.NewStore()
	return application.Service{
		Repo:        store,
		Hasher:      bcryptadapter.NewHasher(bcrypt.MinCost),
		Tokens:      codec,
		Clock:       clock,
		IDGenerator: store,
	}
}

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(t, clock, 2*time.Hour)
	ctx := context.Background()

	user, err := service.Register(ctx, application.RegisterInput{
		Name:     "  Alice ",
		Email:    " Alice@Example.COM ",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Name != "Alice" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	if user.UserID == "" {
		t.Fatal("expected generated user id")
	}
	if user.PasswordHash == "s3cret-password" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}

	resolved, err := service.ResolveUser(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("resolve user failed: %v", err)
	}
	if resolved.UserID != user.UserID {
		t.Fatalf("expected user %s, got %s", user.UserID, resolved.UserID)
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	clock := &fixedClock{now: time.Now().UTC()}
	service := newTestService(t, clock, 2*time.Hour)
	ctx := context.Background()

	cases := []application.RegisterInput{
		{Name: "", Email: "alice@example.com", Password: "pw"},
		{Name: "Alice", Email: "   ", Password: "pw"},
		{Name: "Alice", Email: "alice@example.com", Password: ""},
	}
	for _, input := range cases {
		if _, err := service.Register(ctx, input); !errors.Is(err, domainerrors.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", input, err)
		}
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	clock := &fixedClock{now: time.Now().UTC()}
	service := newTestService(t, clock, 2*time.Hour)
	ctx := context.Background()

	input := application.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pw-one"}
	if _, err := service.Register(ctx, input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	input.Email = "ALICE@EXAMPLE.COM"
	if _, err := service.Register(ctx, input); !errors.Is(err, domainerrors.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(t, clock, 2*time.Hour)
	ctx := context.Background()

	if _, err := service.Register(ctx, application.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := service.Login(ctx, "Alice@Example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected issued token")
	}
	if !session.ExpiresAt.Equal(clock.now.Add(2 * time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", clock.now.Add(2*time.Hour), session.ExpiresAt)
	}

	email, err := service.Authenticate(ctx, session.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if email != "alice@example.com" {
		t.Fatalf("expected subject alice@example.com, got %q", email)
	}
}

func TestLoginFailures(t *testing.T) {
	clock := &fixedClock{now: time.Now().UTC()}
	service := newTestService(t, clock, 2*time.Hour)
	ctx := context.Background()

	if _, err := service.Register(ctx, application.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.Login(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(ctx, "nobody@example.com", "s3cret-password"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := service.Login(ctx, "", "s3cret-password"); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestAuthenticateRejectsExpiredAndTamperedTokens(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(t, clock, time.Hour)
	ctx := context.Background()

	if _, err := service.Register(ctx, application.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	session, err := service.Login(ctx, "alice@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := service.Authenticate(ctx, ""); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for blank token, got %v", err)
	}
	if _, err := service.Authenticate(ctx, session.Token+"tampered"); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for tampered token, got %v", err)
	}

	clock.now = clock.now.Add(2 * time.Hour)
	if _, err := service.Authenticate(ctx, session.Token); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}
