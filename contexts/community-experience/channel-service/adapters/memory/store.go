package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "parley/contexts/community-experience/channel-service/domain/errors"
	"parley/contexts/community-experience/channel-service/ports"
)

// Store is a thread-safe in-memory channel repository for tests and
// development wiring. Every mutation runs under one lock acquisition, so the
// channel-deletion cascade is atomic to readers the same way the postgres
// transaction is.
type Store struct {
	mu sync.RWMutex

	channels        map[string]ports.Channel
	memberships     map[string]ports.Membership
	messages        map[string]ports.Message
	channelMessages map[string][]string
	authorNames     map[string]string
}

func NewStore() *Store {
	return &Store{
		channels:        make(map[string]ports.Channel),
		memberships:     make(map[string]ports.Membership),
		messages:        make(map[string]ports.Message),
		channelMessages: make(map[string][]string),
		authorNames:     make(map[string]string),
	}
}

func (s *Store) InsertChannel(ctx context.Context, input ports.CreateChannelInput) (ports.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := ports.Channel{
		ChannelID: input.ChannelID,
		Name:      input.Name,
		OwnerID:   input.OwnerID,
		CreatedAt: input.CreatedAt.UTC(),
	}
	s.channels[item.ChannelID] = item
	// Owner membership is written with the channel, never as a follow-up.
	s.memberships[membershipKey(input.OwnerID, item.ChannelID)] = ports.Membership{
		UserID:    input.OwnerID,
		ChannelID: item.ChannelID,
		CreatedAt: input.CreatedAt.UTC(),
	}
	return item, nil
}

func (s *Store) FindChannelByID(ctx context.Context, channelID string) (ports.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.channels[channelID]
	if !ok {
		return ports.Channel{}, domainerrors.ErrChannelNotFound
	}
	return item, nil
}

func (s *Store) DeleteChannelCascade(ctx context.Context, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.channels[channelID]; !ok {
		return domainerrors.ErrChannelNotFound
	}
	for _, messageID := range s.channelMessages[channelID] {
		delete(s.messages, messageID)
	}
	delete(s.channelMessages, channelID)
	for key, membership := range s.memberships {
		if membership.ChannelID == channelID {
			delete(s.memberships, key)
		}
	}
	delete(s.channels, channelID)
	return nil
}

func (s *Store) InsertMembership(ctx context.Context, userID string, channelID string, now time.Time) (ports.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := membershipKey(userID, channelID)
	if _, exists := s.memberships[key]; exists {
		return ports.Membership{}, domainerrors.ErrAlreadySubscribed
	}
	item := ports.Membership{
		UserID:    userID,
		ChannelID: channelID,
		CreatedAt: now.UTC(),
	}
	s.memberships[key] = item
	return item, nil
}

func (s *Store) FindMembership(ctx context.Context, userID string, channelID string) (ports.Membership, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.memberships[membershipKey(userID, channelID)]
	return item, ok, nil
}

func (s *Store) InsertMessage(ctx context.Context, input ports.CreateMessageInput) (ports.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := ports.Message{
		MessageID: input.MessageID,
		ChannelID: input.ChannelID,
		AuthorID:  input.AuthorID,
		Content:   input.Content,
		CreatedAt: input.CreatedAt.UTC(),
		UpdatedAt: input.CreatedAt.UTC(),
	}
	s.messages[item.MessageID] = item
	s.channelMessages[item.ChannelID] = append(s.channelMessages[item.ChannelID], item.MessageID)
	if input.AuthorName != "" {
		s.authorNames[input.AuthorID] = input.AuthorName
	}
	return item, nil
}

func (s *Store) FindMessage(ctx context.Context, messageID string, channelID string) (ports.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.messages[messageID]
	if !ok || item.ChannelID != channelID {
		return ports.Message{}, domainerrors.ErrMessageNotFound
	}
	return item, nil
}

func (s *Store) UpdateMessageContent(ctx context.Context, messageID string, content string, now time.Time) (ports.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.messages[messageID]
	if !ok {
		return ports.Message{}, domainerrors.ErrMessageNotFound
	}
	item.Content = content
	item.UpdatedAt = now.UTC()
	s.messages[messageID] = item
	return item, nil
}

func (s *Store) DeleteMessage(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.messages[messageID]
	if !ok {
		return domainerrors.ErrMessageNotFound
	}
	delete(s.messages, messageID)
	ids := s.channelMessages[item.ChannelID]
	for i, id := range ids {
		if id == messageID {
			s.channelMessages[item.ChannelID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) ListMessagesByChannel(ctx context.Context, channelID string) ([]ports.ChannelMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.ChannelMessage, 0, len(s.channelMessages[channelID]))
	for _, messageID := range s.channelMessages[channelID] {
		item := s.messages[messageID]
		name := s.authorNames[item.AuthorID]
		if name == "" {
			name = item.AuthorID
		}
		items = append(items, ports.ChannelMessage{
			Message:    item,
			AuthorName: name,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func membershipKey(userID string, channelID string) string {
	return userID + "|" + channelID
}
