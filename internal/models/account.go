// Package models defines core domain types
package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered practice user
type Account struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	JoinDate     time.Time `json:"join_date"`
	Stats        Stats     `json:"stats"`
	Sessions     []Session `json:"sessions"`
}

// Stats holds the running counters folded in each time a session is persisted
type Stats struct {
	TotalSessions int `json:"total_sessions"`
	TotalTime     int `json:"total_time"` // Minutes
	Streak        int `json:"streak"`     // Consecutive practice days
}

// NewAccount creates an account with a generated ID, zeroed stats and no sessions
func NewAccount(name, email, passwordHash string) *Account {
	return &Account{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		JoinDate:     time.Now().UTC(),
		Sessions:     []Session{},
	}
}

// Clone returns a deep copy so callers can mutate without touching the original
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.Sessions = make([]Session, len(a.Sessions))
	for i := range a.Sessions {
		c.Sessions[i] = a.Sessions[i].Clone()
	}
	return &c
}

// LastSession returns the most recently appended session, if any
func (a *Account) LastSession() (Session, bool) {
	if len(a.Sessions) == 0 {
		return Session{}, false
	}
	return a.Sessions[len(a.Sessions)-1], true
}

// SessionIndex returns the position of the session with the given ID, or -1
func (a *Account) SessionIndex(id uuid.UUID) int {
	for i := range a.Sessions {
		if a.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// IsConsistent reports whether the session counter matches the session log
func (a *Account) IsConsistent() bool {
	return a.Stats.TotalSessions == len(a.Sessions)
}

// newID returns a time-ordered UUID so ids sort by creation time
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
