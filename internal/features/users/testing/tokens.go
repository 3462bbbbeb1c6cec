package users_testing

import (
	"context"
	"errors"
	"sync"

	users_models "taskboard/internal/features/users/models"

	"github.com/google/uuid"
)

// InMemoryRefreshTokenStore keeps one refresh token per user and enforces the
// unique user_id constraint of the refresh_tokens table.
type InMemoryRefreshTokenStore struct {
	mu       sync.Mutex
	byUserID map[uuid.UUID]users_models.RefreshToken

	Creates int
	Updates int
	Deletes int
	GetErr  error
}

func NewInMemoryRefreshTokenStore() *InMemoryRefreshTokenStore {
	return &InMemoryRefreshTokenStore{byUserID: map[uuid.UUID]users_models.RefreshToken{}}
}

func (s *InMemoryRefreshTokenStore) GetByUserID(_ context.Context, userID uuid.UUID) (*users_models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GetErr != nil {
		return nil, s.GetErr
	}

	token, ok := s.byUserID[userID]
	if !ok {
		return nil, nil
	}

	return &token, nil
}

func (s *InMemoryRefreshTokenStore) Create(_ context.Context, token *users_models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUserID[token.UserID]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}

	s.byUserID[token.UserID] = *token
	s.Creates++

	return nil
}

func (s *InMemoryRefreshTokenStore) Update(_ context.Context, token *users_models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byUserID[token.UserID] = *token
	s.Updates++

	return nil
}

func (s *InMemoryRefreshTokenStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, token := range s.byUserID {
		if token.ID == id {
			delete(s.byUserID, userID)
			s.Deletes++
		}
	}

	return nil
}

func (s *InMemoryRefreshTokenStore) RowsFor(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUserID[userID]; ok {
		return 1
	}

	return 0
}

func (s *InMemoryRefreshTokenStore) Stored(userID uuid.UUID) users_models.RefreshToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.byUserID[userID]
}

// StaticRoleNames answers role claims from a fixed map.
type StaticRoleNames map[uuid.UUID][]string

func (r StaticRoleNames) GetRoleNames(_ context.Context, userID uuid.UUID) ([]string, error) {
	return r[userID], nil
}

type StaticSecretKey string

func (k StaticSecretKey) GetSecretKey() (string, error) {
	return string(k), nil
}

type AuditLogRecorder struct {
	mu       sync.Mutex
	Messages []string
	UserIDs  []*uuid.UUID
}

func (r *AuditLogRecorder) WriteAuditLog(message string, userID *uuid.UUID, _ *uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Messages = append(r.Messages, message)
	r.UserIDs = append(r.UserIDs, userID)
}
