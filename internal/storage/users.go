package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already registered")
)

// UserRepository owns the account records kept in the users document.
// Every mutation is a read-modify-write of the whole document and runs
// under mu, so two writers never interleave.
type UserRepository struct {
	kv     KV
	logger *slog.Logger
	mu     sync.Mutex
}

// NewUserRepository creates a new user repository
func NewUserRepository(kv KV, logger *slog.Logger) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{kv: kv, logger: logger}
}

// List returns every account in insertion order
func (r *UserRepository) List(ctx context.Context) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

// GetByEmail retrieves an account by exact email match
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Create appends a new account, rejecting a duplicate email
func (r *UserRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Email == account.Email {
			return ErrEmailExists
		}
	}

	accounts = append(accounts, account.Clone())
	if err := r.store(ctx, accounts); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Save overwrites the account with the same ID
func (r *UserRepository) Save(ctx context.Context, account *models.Account) error {
	_, err := r.Update(ctx, account.ID, func(a *models.Account) error {
		*a = *account.Clone()
		return nil
	})
	return err
}

// Update loads the account with the given ID, applies fn to it and writes
// the document back. If fn returns an error nothing is written. The
// returned account is a copy of what was stored.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, fn func(*models.Account) error) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, a := range accounts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrAccountNotFound
	}

	updated := accounts[idx].Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = id
	accounts[idx] = updated

	if err := r.store(ctx, accounts); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return updated.Clone(), nil
}

// load reads the users document. A corrupt document degrades to an empty
// list rather than failing every request.
func (r *UserRepository) load(ctx context.Context) ([]*models.Account, error) {
	raw, ok, err := r.kv.Get(ctx, KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	if !ok || raw == "" {
		return []*models.Account{}, nil
	}

	var accounts []*models.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		r.logger.Warn("users document is corrupt, treating as empty", "error", err)
		return []*models.Account{}, nil
	}

	for _, a := range accounts {
		if a.Sessions == nil {
			a.Sessions = []models.Session{}
		}
	}
	return accounts, nil
}

func (r *UserRepository) store(ctx context.Context, accounts []*models.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	return r.kv.Set(ctx, KeyUsers, string(data))
}
