package practice

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/logging"
	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/gungunaswani/GroomifyAI/internal/services/capture"
	"github.com/gungunaswani/GroomifyAI/internal/services/feedback"
	"github.com/gungunaswani/GroomifyAI/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	clock   *ManualClock
	device  *capture.Simulated
	users   *storage.UserRepository
	current *storage.CurrentUserStore
	account *models.Account
	rec     *Recorder

	mu    sync.Mutex
	snaps []Snapshot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := logging.Discard()

	kv := storage.NewMemoryKV()
	f := &fixture{
		clock:   NewManualClock(epoch0),
		users:   storage.NewUserRepository(kv, logger),
		current: storage.NewCurrentUserStore(kv, logger),
		account: models.NewAccount("Ana", "ana@x.com", "hash"),
	}
	f.device = capture.NewSimulated(true, f.clock.Now)
	require.NoError(t, f.users.Create(ctx, f.account))
	require.NoError(t, f.current.Set(ctx, f.account))

	f.rec = NewRecorder(f.account, DefaultConfig(), Deps{
		Device:    f.device,
		Clock:     f.clock,
		Generator: feedback.NewMock(rand.New(rand.NewPCG(1, 2))),
		Persister: NewPersister(f.users, f.current, logger),
		Observer:  f.observe,
		Logger:    logger,
	})
	t.Cleanup(f.rec.Close)
	return f
}

func (f *fixture) observe(s Snapshot) {
	f.mu.Lock()
	f.snaps = append(f.snaps, s)
	f.mu.Unlock()
}

func (f *fixture) stored(t *testing.T) *models.Account {
	t.Helper()
	a, err := f.users.GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	return a
}

// record runs a full Start, tick, Stop cycle of the given length
func (f *fixture) record(t *testing.T, seconds int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.rec.Start(ctx))
	f.clock.Advance(time.Duration(seconds) * time.Second)
	require.NoError(t, f.rec.Stop(ctx))
}

func TestRecorder_StartTickStopFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.rec.Start(ctx))
	snap := f.rec.Snapshot()
	assert.Equal(t, StateRecording, snap.State)
	assert.Equal(t, 0, snap.Elapsed)
	assert.Equal(t, models.ProgressRecording, snap.Progress)

	for want := 1; want <= 3; want++ {
		f.clock.Advance(time.Second)
		assert.Equal(t, want, f.rec.Snapshot().Elapsed)
	}

	require.NoError(t, f.rec.Stop(ctx))
	snap = f.rec.Snapshot()
	assert.Equal(t, StateStopped, snap.State)
	assert.True(t, snap.HasRecording)
	assert.Nil(t, snap.Feedback)
	assert.Equal(t, 3, f.rec.Session().Duration)

	stored := f.stored(t)
	require.Len(t, stored.Sessions, 1)
	assert.Equal(t, 1, stored.Stats.TotalSessions)
	assert.Equal(t, 0, stored.Stats.TotalTime)
	assert.Equal(t, 1, stored.Stats.Streak)
	assert.Equal(t, models.ProgressRecording, stored.Sessions[0].Progress)

	// Ticks stop with the recording
	f.clock.Advance(time.Second)
	assert.Equal(t, 3, f.rec.Snapshot().Elapsed)

	f.clock.Advance(time.Second)
	snap = f.rec.Snapshot()
	assert.Equal(t, StateFeedbackReady, snap.State)
	assert.Equal(t, models.ProgressFeedback, snap.Progress)
	require.NotNil(t, snap.Feedback)
	assert.Len(t, snap.Feedback.Suggestions, feedback.SuggestionCount)
	assert.Equal(t, snap.Feedback.ConfidenceLevel, f.rec.Session().Score)

	stored = f.stored(t)
	require.Len(t, stored.Sessions, 1)
	assert.Equal(t, models.ProgressFeedback, stored.Sessions[0].Progress)
	assert.Equal(t, snap.Feedback.ConfidenceLevel, stored.Sessions[0].Score)
	assert.Equal(t, 1, stored.Stats.TotalSessions, "sync must not touch stats")

	current, err := f.current.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, current)
}

func TestRecorder_StartWhileRecording(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.rec.Start(ctx))
	f.clock.Advance(2 * time.Second)

	err := f.rec.Start(ctx)
	assert.ErrorIs(t, err, ErrAlreadyRecording)
	assert.Equal(t, StateRecording, f.rec.State())
	assert.Equal(t, 2, f.rec.Snapshot().Elapsed)
}

func TestRecorder_CaptureUnavailable(t *testing.T) {
	f := newFixture(t)
	f.device.SetEnabled(false)

	err := f.rec.Start(context.Background())
	assert.ErrorIs(t, err, ErrCaptureUnavailable)

	snap := f.rec.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, snap.Elapsed)
	assert.Equal(t, models.ProgressNew, snap.Progress)
	assert.Equal(t, 0, f.clock.Pending())
}

func TestRecorder_StartWithoutDevice(t *testing.T) {
	rec := NewRecorder(models.NewAccount("Ana", "ana@x.com", "h"), DefaultConfig(), Deps{
		Clock:  NewManualClock(epoch0),
		Logger: logging.Discard(),
	})
	defer rec.Close()

	assert.ErrorIs(t, rec.Start(context.Background()), ErrCaptureUnavailable)
	assert.Equal(t, StateIdle, rec.State())
}

func TestRecorder_StopWhenNotRecording(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.rec.Stop(context.Background()), ErrNotRecording)
	assert.Empty(t, f.stored(t).Sessions)
}

func TestRecorder_ResetFromAnyState(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		setup func(t *testing.T, f *fixture)
	}{
		{"idle", func(t *testing.T, f *fixture) {}},
		{"recording", func(t *testing.T, f *fixture) {
			require.NoError(t, f.rec.Start(ctx))
			f.clock.Advance(2 * time.Second)
		}},
		{"stopped", func(t *testing.T, f *fixture) {
			f.record(t, 2)
		}},
		{"feedback ready", func(t *testing.T, f *fixture) {
			f.record(t, 2)
			f.clock.Advance(2 * time.Second)
		}},
		{"playing", func(t *testing.T, f *fixture) {
			f.record(t, 2)
			require.NoError(t, f.rec.Play(ctx))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			f.rec.Reset()

			snap := f.rec.Snapshot()
			assert.Equal(t, StateIdle, snap.State)
			assert.Equal(t, 0, snap.Elapsed)
			assert.Nil(t, snap.Feedback)
			assert.False(t, snap.HasRecording)
			assert.False(t, snap.Playing)
			assert.Equal(t, 0, f.clock.Pending())
		})
	}
}

func TestRecorder_ResetDuringRecordingDoesNotPersist(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.rec.Start(context.Background()))
	f.clock.Advance(5 * time.Second)

	f.rec.Reset()

	stored := f.stored(t)
	assert.Empty(t, stored.Sessions)
	assert.Equal(t, 0, stored.Stats.TotalSessions)
}

func TestRecorder_StaleFeedbackIsDiscarded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.record(t, 1)
	f.rec.Reset()
	f.clock.Advance(5 * time.Second)

	snap := f.rec.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Feedback)

	// A new recording must not pick up feedback from the old cycle
	f.record(t, 1)
	f.rec.Reset()
	require.NoError(t, f.rec.Start(ctx))
	f.clock.Advance(2 * time.Second)

	snap = f.rec.Snapshot()
	assert.Equal(t, StateRecording, snap.State)
	assert.Equal(t, 2, snap.Elapsed)
	assert.Nil(t, snap.Feedback)
}

func TestRecorder_ProgressNeverDecreases(t *testing.T) {
	f := newFixture(t)
	f.record(t, 2)
	f.clock.Advance(2 * time.Second)

	persisted := f.rec.Session()
	f.rec.Reset()

	// Reset moves to a fresh session rather than rewinding the old one
	assert.NotEqual(t, persisted.ID, f.rec.Session().ID)
	stored := f.stored(t)
	require.Len(t, stored.Sessions, 1)
	assert.Equal(t, models.ProgressFeedback, stored.Sessions[0].Progress)
}

func TestRecorder_Play(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.rec.Play(ctx), ErrNoRecordingAvailable)

	f.record(t, 2)
	require.NoError(t, f.rec.Play(ctx))
	assert.True(t, f.rec.Snapshot().Playing)
	assert.ErrorIs(t, f.rec.Play(ctx), ErrPlaybackInProgress)

	f.clock.Advance(DefaultConfig().PlaybackDuration)
	snap := f.rec.Snapshot()
	assert.False(t, snap.Playing)
	assert.Equal(t, StateFeedbackReady, snap.State, "playback does not block feedback")
}

func TestRecorder_Complete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.rec.Complete(ctx), ErrInvalidTransition)

	f.record(t, 2)
	assert.ErrorIs(t, f.rec.Complete(ctx), ErrInvalidTransition)

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.rec.Complete(ctx))

	snap := f.rec.Snapshot()
	assert.Equal(t, models.ProgressComplete, snap.Progress)
	assert.True(t, snap.Completed)

	stored := f.stored(t)
	require.Len(t, stored.Sessions, 1)
	assert.True(t, stored.Sessions[0].Completed)
	assert.Equal(t, models.ProgressComplete, stored.Sessions[0].Progress)
	assert.Equal(t, 1, stored.Stats.TotalSessions)

	assert.ErrorIs(t, f.rec.Complete(ctx), ErrInvalidTransition)
}

func TestRecorder_EachStopAppendsOnce(t *testing.T) {
	f := newFixture(t)

	f.record(t, 30)
	f.clock.Advance(2 * time.Second)
	f.rec.Reset()
	f.record(t, 125)

	stored := f.stored(t)
	assert.Len(t, stored.Sessions, 2)
	assert.True(t, stored.IsConsistent())
	assert.Equal(t, 2, stored.Stats.TotalSessions)
	assert.Equal(t, 2, stored.Stats.TotalTime)
	assert.Equal(t, 1, stored.Stats.Streak)
	assert.NotEqual(t, stored.Sessions[0].ID, stored.Sessions[1].ID)
}

func TestRecorder_RestartFromStoppedUsesNewSession(t *testing.T) {
	f := newFixture(t)
	f.record(t, 1)
	first := f.rec.Session().ID

	require.NoError(t, f.rec.Start(context.Background()))
	assert.NotEqual(t, first, f.rec.Session().ID)
	assert.Equal(t, 0, f.rec.Snapshot().Elapsed)

	// The old cycle's feedback timer is gone
	f.clock.Advance(3 * time.Second)
	assert.Equal(t, StateRecording, f.rec.State())
}

func TestRecorder_StartFromFeedbackReadyRejected(t *testing.T) {
	f := newFixture(t)
	f.record(t, 1)
	f.clock.Advance(2 * time.Second)

	assert.ErrorIs(t, f.rec.Start(context.Background()), ErrInvalidTransition)
	assert.Equal(t, StateFeedbackReady, f.rec.State())
}

func TestRecorder_SelectScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.rec.SelectScenario(models.ScenarioProjectPresentation))
	assert.Equal(t, models.ScenarioProjectPresentation, f.rec.Snapshot().Scenario)

	assert.ErrorIs(t, f.rec.SelectScenario("karaoke"), ErrUnknownScenario)

	require.NoError(t, f.rec.Start(ctx))
	assert.ErrorIs(t, f.rec.SelectScenario(models.ScenarioBehavioralInterview), ErrInvalidTransition)
	require.NoError(t, f.rec.Stop(ctx))

	stored := f.stored(t)
	require.Len(t, stored.Sessions, 1)
	assert.Equal(t, models.ScenarioProjectPresentation, stored.Sessions[0].Scenario)
}

type failingPersister struct{}

func (failingPersister) PersistSession(context.Context, *models.Account, models.Session) (*models.Account, error) {
	return nil, errors.New("disk full")
}

func (failingPersister) SyncSession(context.Context, uuid.UUID, models.Session) error {
	return errors.New("disk full")
}

func TestRecorder_PersistFailureStillStops(t *testing.T) {
	clock := NewManualClock(epoch0)
	rec := NewRecorder(models.NewAccount("Ana", "ana@x.com", "h"), DefaultConfig(), Deps{
		Device:    capture.NewSimulated(true, clock.Now),
		Clock:     clock,
		Persister: failingPersister{},
		Logger:    logging.Discard(),
	})
	defer rec.Close()
	ctx := context.Background()

	require.NoError(t, rec.Start(ctx))
	clock.Advance(time.Second)
	assert.Error(t, rec.Stop(ctx))
	assert.Equal(t, StateStopped, rec.State())

	clock.Advance(2 * time.Second)
	assert.Equal(t, StateFeedbackReady, rec.State())
}

func TestRecorder_ObserverSeesEveryChange(t *testing.T) {
	f := newFixture(t)
	f.record(t, 2)
	f.clock.Advance(2 * time.Second)

	f.mu.Lock()
	defer f.mu.Unlock()

	var states []State
	for _, s := range f.snaps {
		states = append(states, s.State)
	}
	// start, two ticks, stop, feedback
	assert.Equal(t, []State{StateRecording, StateRecording, StateRecording, StateStopped, StateFeedbackReady}, states)
	assert.Equal(t, 2, f.snaps[2].Elapsed)
}

func TestRecorder_FailedRestartKeepsStoppedCycle(t *testing.T) {
	f := newFixture(t)
	f.record(t, 3)
	stopped := f.rec.Session().ID

	f.device.SetEnabled(false)
	err := f.rec.Start(context.Background())
	assert.ErrorIs(t, err, ErrCaptureUnavailable)

	snap := f.rec.Snapshot()
	assert.Equal(t, StateStopped, snap.State)
	assert.True(t, snap.HasRecording)
	assert.Equal(t, stopped, snap.SessionID)

	f.clock.Advance(5 * time.Second)

	snap = f.rec.Snapshot()
	assert.Equal(t, StateFeedbackReady, snap.State)
	assert.NotNil(t, snap.Feedback)

	stored := f.stored(t)
	require.Len(t, stored.Sessions, 1)
	assert.Equal(t, models.ProgressFeedback, stored.Sessions[0].Progress)
}

type brokenStopDevice struct{}

func (brokenStopDevice) Acquire(context.Context) (capture.Handle, error) {
	return brokenStopHandle{}, nil
}

type brokenStopHandle struct{}

func (brokenStopHandle) Start() error { return nil }

func (brokenStopHandle) Stop() (capture.Artifact, error) {
	return capture.Artifact{}, errors.New("device unplugged")
}

func TestRecorder_FailedCaptureStopLeavesNoRecording(t *testing.T) {
	clock := NewManualClock(epoch0)
	rec := NewRecorder(models.NewAccount("Ana", "ana@x.com", "h"), DefaultConfig(), Deps{
		Device: brokenStopDevice{},
		Clock:  clock,
		Logger: logging.Discard(),
	})
	defer rec.Close()
	ctx := context.Background()

	require.NoError(t, rec.Start(ctx))
	clock.Advance(time.Second)
	require.NoError(t, rec.Stop(ctx))

	assert.Equal(t, StateStopped, rec.State())
	assert.False(t, rec.Snapshot().HasRecording)
	assert.ErrorIs(t, rec.Play(ctx), ErrNoRecordingAvailable)
}
