package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gungunaswani/GroomifyAI/internal/models"
)

// CurrentUserStore is the single slot holding the logged-in account. It is
// mirrored into the current_user document so a restart keeps the login.
type CurrentUserStore struct {
	kv     KV
	logger *slog.Logger
	mu     sync.Mutex
}

// NewCurrentUserStore creates the current-user slot over kv
func NewCurrentUserStore(kv KV, logger *slog.Logger) *CurrentUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurrentUserStore{kv: kv, logger: logger}
}

// Get returns the logged-in account snapshot, or nil when nobody is logged
// in. An unreadable snapshot counts as logged out.
func (s *CurrentUserStore) Get(ctx context.Context) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read current user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var account models.Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		s.logger.Warn("current user snapshot is corrupt, treating as logged out", "error", err)
		return nil, nil
	}
	if account.Sessions == nil {
		account.Sessions = []models.Session{}
	}
	return &account, nil
}

// Set replaces the slot with a snapshot of account
func (s *CurrentUserStore) Set(ctx context.Context, account *models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to encode current user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(ctx, KeyCurrentUser, string(data))
}

// Clear empties the slot
func (s *CurrentUserStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, KeyCurrentUser)
}
