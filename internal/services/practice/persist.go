package practice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/gungunaswani/GroomifyAI/internal/storage"
)

// SessionPersister records finished sessions against their account
type SessionPersister interface {
	PersistSession(ctx context.Context, account *models.Account, session models.Session) (*models.Account, error)
	SyncSession(ctx context.Context, accountID uuid.UUID, session models.Session) error
}

// Persister is the single write path for an account's session log and
// stats. Nothing else changes TotalSessions or TotalTime.
type Persister struct {
	users   *storage.UserRepository
	current *storage.CurrentUserStore
	logger  *slog.Logger
}

// NewPersister creates a persister over the user store and current-user slot
func NewPersister(users *storage.UserRepository, current *storage.CurrentUserStore, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	return &Persister{users: users, current: current, logger: logger}
}

// PersistSession appends session to the account's log and folds it into
// the stats. It returns the stored account, which also becomes the
// current user.
func (p *Persister) PersistSession(ctx context.Context, account *models.Account, session models.Session) (*models.Account, error) {
	updated, err := p.users.Update(ctx, account.ID, func(a *models.Account) error {
		day := sessionDay(session)
		if prev, ok := a.LastSession(); ok {
			a.Stats.Streak = nextStreak(a.Stats.Streak, sessionDay(prev), day)
		} else {
			a.Stats.Streak = 1
		}
		a.Sessions = append(a.Sessions, session.Clone())
		a.Stats.TotalSessions++
		a.Stats.TotalTime += session.Minutes()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist session %s: %w", session.ID, err)
	}

	p.refreshCurrent(ctx, updated)

	p.logger.Info("session persisted",
		"account_id", updated.ID,
		"session_id", session.ID,
		"duration", session.Duration,
		"total_sessions", updated.Stats.TotalSessions,
	)
	return updated, nil
}

// SyncSession replaces the stored copy of an already persisted session,
// carrying later progress, completion and score. Stats are left alone.
func (p *Persister) SyncSession(ctx context.Context, accountID uuid.UUID, session models.Session) error {
	updated, err := p.users.Update(ctx, accountID, func(a *models.Account) error {
		idx := a.SessionIndex(session.ID)
		if idx == -1 {
			return ErrSessionNotFound
		}
		a.Sessions[idx] = session.Clone()
		return nil
	})
	if err != nil {
		return fmt.Errorf("sync session %s: %w", session.ID, err)
	}
	p.refreshCurrent(ctx, updated)
	return nil
}

// refreshCurrent mirrors the stored account into the current-user slot.
// The user store is authoritative, so a failure here is only logged.
func (p *Persister) refreshCurrent(ctx context.Context, account *models.Account) {
	if err := p.current.Set(ctx, account); err != nil {
		p.logger.Warn("failed to refresh current user", "account_id", account.ID, "error", err)
	}
}

// sessionDay is the UTC calendar day a session belongs to
func sessionDay(s models.Session) time.Time {
	t := s.StartTime
	if s.EndTime != nil {
		t = *s.EndTime
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextStreak extends the run of consecutive practice days
func nextStreak(streak int, prevDay, day time.Time) int {
	switch {
	case streak == 0:
		return 1
	case day.Equal(prevDay):
		return streak
	case day.Equal(prevDay.AddDate(0, 0, 1)):
		return streak + 1
	default:
		return 1
	}
}
