package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfileSummary is the headline block on the dashboard
type ProfileSummary struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	MemberSince   string    `json:"member_since"` // e.g. "March 2025"
	JoinDate      time.Time `json:"join_date"`
	TotalSessions int       `json:"total_sessions"`
	TotalMinutes  int       `json:"total_minutes"`
	PracticeHours int       `json:"practice_hours"`
	SessionsToday int       `json:"sessions_today"`
	Streak        int       `json:"streak"`
}

// HistoryEntry is one row of the session timeline
type HistoryEntry struct {
	SessionID     uuid.UUID    `json:"session_id"`
	Scenario      ScenarioKind `json:"scenario"`
	ScenarioTitle string       `json:"scenario_title"`
	StartTime     time.Time    `json:"start_time"`
	TimeAgo       string       `json:"time_ago"`
	Minutes       int          `json:"minutes"`
	Progress      int          `json:"progress"`
	Completed     bool         `json:"completed"`
}

// ProgressPoint is one day on the progress chart
type ProgressPoint struct {
	Date     time.Time       `json:"date"`
	Sessions int             `json:"sessions"`
	Score    decimal.Decimal `json:"score"` // Average feedback score, 0 when nothing was scored
}

// ProgressPeriod constants
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// PeriodDays returns how many days a chart period covers, or 0 if unknown
func PeriodDays(period string) int {
	switch period {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodYear:
		return 365
	default:
		return 0
	}
}

// GetPeriodStartDate returns the first UTC day of a chart period ending on now's day
func GetPeriodStartDate(period string, now time.Time) time.Time {
	days := PeriodDays(period)
	if days == 0 {
		days = 7
	}
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
}
