package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/shopspring/decimal"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func createTestAccount(n int) *models.Account {
	a := models.NewAccount("Ana", "ana@x.com", "h")
	a.JoinDate = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s := models.NewSession(models.DefaultScenario)
		s.StartTime = now.Add(-time.Duration(i) * time.Hour)
		s.Duration = 120
		s.Progress = models.ProgressRecording
		a.Sessions = append(a.Sessions, *s)
	}
	a.Stats.TotalSessions = n
	a.Stats.TotalTime = 2 * n
	return a
}

func TestNewService(t *testing.T) {
	svc := NewService()
	if svc == nil {
		t.Fatal("Expected service to be created")
	}
}

func TestService_Summary(t *testing.T) {
	svc := NewService()

	tests := []struct {
		sessions    int
		wantToday   int
		wantHours   int
		wantMinutes int
	}{
		{0, 0, 0, 0},
		{2, 2, 0, 4},
		{3, 3, 0, 6},
		{45, 3, 1, 90},
	}

	for _, tt := range tests {
		a := createTestAccount(tt.sessions)
		sum := svc.Summary(a)

		if sum.TotalSessions != tt.sessions {
			t.Errorf("Expected %d total sessions, got %d", tt.sessions, sum.TotalSessions)
		}
		if sum.SessionsToday != tt.wantToday {
			t.Errorf("With %d sessions expected %d today, got %d", tt.sessions, tt.wantToday, sum.SessionsToday)
		}
		if sum.PracticeHours != tt.wantHours {
			t.Errorf("With %d sessions expected %d hours, got %d", tt.sessions, tt.wantHours, sum.PracticeHours)
		}
		if sum.TotalMinutes != tt.wantMinutes {
			t.Errorf("With %d sessions expected %d minutes, got %d", tt.sessions, tt.wantMinutes, sum.TotalMinutes)
		}
		if sum.MemberSince != "January 2025" {
			t.Errorf("Expected member since January 2025, got %s", sum.MemberSince)
		}
	}
}

func TestService_History(t *testing.T) {
	svc := NewService()
	a := createTestAccount(12)

	// Oldest appended last; shuffle one to the front to check sorting
	a.Sessions[0], a.Sessions[11] = a.Sessions[11], a.Sessions[0]

	history := svc.History(a, now)
	if len(history) != HistoryLimit {
		t.Fatalf("Expected %d entries, got %d", HistoryLimit, len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].StartTime.After(history[i-1].StartTime) {
			t.Errorf("Entry %d is newer than entry %d", i, i-1)
		}
	}
	if history[0].TimeAgo != "Just now" {
		t.Errorf("Expected newest entry to be just now, got %s", history[0].TimeAgo)
	}
	if history[0].ScenarioTitle != models.DefaultScenario.Title() {
		t.Errorf("Expected scenario title %s, got %s", models.DefaultScenario.Title(), history[0].ScenarioTitle)
	}
	if history[0].Minutes != 2 {
		t.Errorf("Expected 2 minutes, got %d", history[0].Minutes)
	}
}

func TestService_HistoryEmpty(t *testing.T) {
	svc := NewService()
	history := svc.History(createTestAccount(0), now)
	if history == nil || len(history) != 0 {
		t.Errorf("Expected empty non-nil history, got %v", history)
	}
}

func TestTimeAgo(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{29 * 24 * time.Hour, "29 days ago"},
		{40 * 24 * time.Hour, "1/29/2025"},
	}

	for _, tt := range tests {
		if got := TimeAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("TimeAgo(-%s) = %q, expected %q", tt.ago, got, tt.want)
		}
	}
}

func TestService_ProgressSeries(t *testing.T) {
	svc := NewService()
	a := models.NewAccount("Ana", "ana@x.com", "h")

	add := func(at time.Time, score int) {
		s := models.NewSession(models.DefaultScenario)
		s.StartTime = at
		s.Score = score
		a.Sessions = append(a.Sessions, *s)
	}
	add(now.Add(-time.Hour), 80)
	add(now.Add(-2*time.Hour), 85)
	add(now.Add(-3*time.Hour), 0)
	add(now.AddDate(0, 0, -2), 77)
	add(now.AddDate(0, 0, -20), 90) // outside the week

	points, err := svc.ProgressSeries(a, models.PeriodWeek, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("Expected 7 points, got %d", len(points))
	}

	today := points[6]
	if today.Sessions != 3 {
		t.Errorf("Expected 3 sessions today, got %d", today.Sessions)
	}
	if !today.Score.Equal(decimal.NewFromFloat(82.5)) {
		t.Errorf("Expected average 82.5, got %s", today.Score)
	}
	if !points[4].Score.Equal(decimal.NewFromInt(77)) {
		t.Errorf("Expected 77 two days ago, got %s", points[4].Score)
	}
	if !points[0].Score.IsZero() || points[0].Sessions != 0 {
		t.Errorf("Expected empty first day, got %+v", points[0])
	}

	month, err := svc.ProgressSeries(a, models.PeriodMonth, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	total := 0
	for _, p := range month {
		total += p.Sessions
	}
	if total != 5 {
		t.Errorf("Expected all 5 sessions in the month, got %d", total)
	}
}

func TestService_ProgressSeriesUnknownPeriod(t *testing.T) {
	svc := NewService()
	_, err := svc.ProgressSeries(createTestAccount(1), "decade", now)
	if !errors.Is(err, ErrUnknownPeriod) {
		t.Errorf("Expected ErrUnknownPeriod, got %v", err)
	}
}
