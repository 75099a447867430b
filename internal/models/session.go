package models

import (
	"time"

	"github.com/google/uuid"
)

// Progress checkpoints a practice session moves through
const (
	ProgressNew       = 0
	ProgressRecording = 25 // Recording started
	ProgressFeedback  = 75 // Recording stopped and feedback delivered
	ProgressComplete  = 100
)

// Session represents one practice attempt, from recording start to completion
type Session struct {
	ID        uuid.UUID    `json:"id"`
	Scenario  ScenarioKind `json:"scenario"`
	StartTime time.Time    `json:"start_time"`
	EndTime   *time.Time   `json:"end_time,omitempty"`
	Duration  int          `json:"duration"` // Recorded seconds
	Progress  int          `json:"progress"` // Percentage 0-100
	Completed bool         `json:"completed"`
	Score     int          `json:"score,omitempty"` // Confidence level from feedback
}

// NewSession creates a session for the given scenario starting now
func NewSession(scenario ScenarioKind) *Session {
	return &Session{
		ID:        newID(),
		Scenario:  scenario,
		StartTime: time.Now().UTC(),
		Progress:  ProgressNew,
	}
}

// Advance moves progress forward to percent. Progress never decreases, so
// a lower value is ignored. Reaching 100 marks the session completed.
func (s *Session) Advance(percent int, now time.Time) bool {
	if percent > ProgressComplete {
		percent = ProgressComplete
	}
	if percent <= s.Progress {
		return false
	}
	s.Progress = percent
	if percent == ProgressComplete {
		s.Completed = true
		s.Finish(now)
	}
	return true
}

// Finish stamps the end time
func (s *Session) Finish(now time.Time) {
	end := now.UTC()
	s.EndTime = &end
}

// Minutes returns the whole minutes recorded
func (s *Session) Minutes() int {
	return s.Duration / 60
}

// Clone returns a copy that shares no pointers with s
func (s Session) Clone() Session {
	if s.EndTime != nil {
		end := *s.EndTime
		s.EndTime = &end
	}
	return s
}
