package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "parley/contexts/identity-access/account-service/domain/errors"
	"parley/contexts/identity-access/account-service/ports"
)

// Store is a thread-safe in-memory identity repository for tests and
// development wiring.
type Store struct {
	mu sync.RWMutex

	usersByEmail map[string]ports.User
}

func NewStore() *Store {
	return &Store{
		usersByEmail: make(map[string]ports.User),
	}
}

func (s *Store) InsertUser(ctx context.Context, input ports.CreateUserInput) (ports.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[input.Email]; exists {
		return ports.User{}, domainerrors.ErrEmailAlreadyRegistered
	}
	user := ports.User{
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt.UTC(),
	}
	s.usersByEmail[user.Email] = user
	return user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByEmail[email]
	if !ok {
		return ports.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
