// Package analytics derives dashboard figures from an account's session log
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/shopspring/decimal"
)

// HistoryLimit is how many sessions the timeline shows
const HistoryLimit = 10

// sessionsTodayCap mirrors the dashboard's placeholder: it shows the
// total capped at 3 rather than a real same-day count.
const sessionsTodayCap = 3

// ErrUnknownPeriod is returned for a chart period other than week, month or year
var ErrUnknownPeriod = errors.New("unknown period")

// Service provides dashboard analytics calculations
type Service struct{}

// NewService creates a new analytics service
func NewService() *Service {
	return &Service{}
}

// Summary builds the profile block for account
func (s *Service) Summary(account *models.Account) models.ProfileSummary {
	total := len(account.Sessions)
	return models.ProfileSummary{
		Name:          account.Name,
		Email:         account.Email,
		MemberSince:   account.JoinDate.Format("January 2006"),
		JoinDate:      account.JoinDate,
		TotalSessions: total,
		TotalMinutes:  account.Stats.TotalTime,
		PracticeHours: account.Stats.TotalTime / 60,
		SessionsToday: min(total, sessionsTodayCap),
		Streak:        account.Stats.Streak,
	}
}

// History lists the most recent sessions first, at most HistoryLimit of them
func (s *Service) History(account *models.Account, now time.Time) []models.HistoryEntry {
	sessions := make([]models.Session, len(account.Sessions))
	copy(sessions, account.Sessions)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	if len(sessions) > HistoryLimit {
		sessions = sessions[:HistoryLimit]
	}

	entries := make([]models.HistoryEntry, 0, len(sessions))
	for _, sess := range sessions {
		entries = append(entries, models.HistoryEntry{
			SessionID:     sess.ID,
			Scenario:      sess.Scenario,
			ScenarioTitle: sess.Scenario.Title(),
			StartTime:     sess.StartTime,
			TimeAgo:       TimeAgo(sess.StartTime, now),
			Minutes:       sess.Minutes(),
			Progress:      sess.Progress,
			Completed:     sess.Completed,
		})
	}
	return entries
}

// ProgressSeries averages feedback scores per UTC day over the period ending
// on now's day. Every day in the period gets a point; sessions without a
// score count towards Sessions but not the average.
func (s *Service) ProgressSeries(account *models.Account, period string, now time.Time) ([]models.ProgressPoint, error) {
	days := models.PeriodDays(period)
	if days == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
	start := models.GetPeriodStartDate(period, now)

	type bucket struct {
		sessions int
		scored   int
		total    decimal.Decimal
	}
	buckets := make([]bucket, days)

	for _, sess := range account.Sessions {
		offset := int(dayOf(sess.StartTime).Sub(start).Hours() / 24)
		if offset < 0 || offset >= days {
			continue
		}
		b := &buckets[offset]
		b.sessions++
		if sess.Score > 0 {
			b.scored++
			b.total = b.total.Add(decimal.NewFromInt(int64(sess.Score)))
		}
	}

	points := make([]models.ProgressPoint, days)
	for i, b := range buckets {
		score := decimal.Zero
		if b.scored > 0 {
			score = b.total.Div(decimal.NewFromInt(int64(b.scored))).Round(1)
		}
		points[i] = models.ProgressPoint{
			Date:     start.AddDate(0, 0, i),
			Sessions: b.sessions,
			Score:    score,
		}
	}
	return points, nil
}

// TimeAgo renders the gap between t and now the way the timeline shows it
func TimeAgo(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	if seconds < 60 {
		return "Just now"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return plural(minutes, "minute") + " ago"
	}
	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour") + " ago"
	}
	days := hours / 24
	if days < 30 {
		return plural(days, "day") + " ago"
	}
	return t.Format("1/2/2006")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
