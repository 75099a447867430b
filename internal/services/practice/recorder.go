// Package practice runs a practice session: the recording state machine,
// the delayed feedback step and the persistence of finished sessions.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/gungunaswani/GroomifyAI/internal/services/capture"
	"github.com/gungunaswani/GroomifyAI/internal/services/feedback"
)

// State is a recorder state
type State string

const (
	StateIdle          State = "idle"
	StateRecording     State = "recording"
	StateStopped       State = "stopped"
	StateFeedbackReady State = "feedback_ready"
)

// Config holds recorder timings
type Config struct {
	TickInterval     time.Duration
	FeedbackDelay    time.Duration
	PlaybackDuration time.Duration
}

// DefaultConfig returns the standard practice page timings
func DefaultConfig() Config {
	return Config{
		TickInterval:     time.Second,
		FeedbackDelay:    2 * time.Second,
		PlaybackDuration: 3 * time.Second,
	}
}

// Snapshot is what the presentation layer renders
type Snapshot struct {
	AccountID    uuid.UUID           `json:"account_id"`
	SessionID    uuid.UUID           `json:"session_id"`
	Scenario     models.ScenarioKind `json:"scenario"`
	State        State               `json:"state"`
	Elapsed      int                 `json:"elapsed"` // Seconds
	Progress     int                 `json:"progress"`
	Completed    bool                `json:"completed"`
	HasRecording bool                `json:"has_recording"`
	Playing      bool                `json:"playing"`
	Feedback     *models.Feedback    `json:"feedback,omitempty"`
}

// Observer receives a snapshot after every change. It is called with the
// recorder locked and must not call back into it.
type Observer func(Snapshot)

// Deps are the recorder's collaborators
type Deps struct {
	Device    capture.Device
	Clock     Clock
	Generator feedback.Generator
	Persister SessionPersister
	Observer  Observer
	Logger    *slog.Logger
}

// Recorder is the recording state machine for one account:
//
//	Idle -> Recording -> Stopped -> FeedbackReady
//
// with Reset returning to Idle from anywhere. Every recording cycle has an
// epoch; timer callbacks from an older epoch are dropped.
type Recorder struct {
	mu  sync.Mutex
	cfg Config

	accountID uuid.UUID
	account   *models.Account

	device    capture.Device
	clock     Clock
	generator feedback.Generator
	persister SessionPersister
	observer  Observer
	logger    *slog.Logger

	state     State
	session   *models.Session
	persisted bool
	elapsed   int
	epoch     uint64

	handle   capture.Handle
	artifact *capture.Artifact
	feedback *models.Feedback

	ticker   Timer
	pending  Timer
	playback Timer
	playing  bool
}

// NewRecorder creates an idle recorder with a fresh session for account
func NewRecorder(account *models.Account, cfg Config, deps Deps) *Recorder {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Generator == nil {
		deps.Generator = feedback.NewMock(nil)
	}

	r := &Recorder{
		cfg:       cfg,
		accountID: account.ID,
		account:   account.Clone(),
		device:    deps.Device,
		clock:     deps.Clock,
		generator: deps.Generator,
		persister: deps.Persister,
		observer:  deps.Observer,
		logger:    deps.Logger.With("account_id", account.ID),
		state:     StateIdle,
	}
	r.session = r.newSession(models.DefaultScenario)
	return r
}

// SetObserver replaces the snapshot observer
func (r *Recorder) SetObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = o
}

// Snapshot returns the current state
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// State returns the current state
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Session returns a copy of the session being practiced
func (r *Recorder) Session() models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Clone()
}

// Account returns the latest known copy of the owning account
func (r *Recorder) Account() *models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.account.Clone()
}

// SelectScenario switches the scenario of the upcoming recording. Only
// allowed while idle.
func (r *Recorder) SelectScenario(kind models.ScenarioKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownScenario, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		return ErrInvalidTransition
	}
	r.session.Scenario = kind
	r.publishLocked()
	return nil
}

// Start acquires the capture device and begins recording. It is valid from
// Idle or Stopped. On failure nothing changes and the error wraps
// ErrCaptureUnavailable.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateRecording:
		return ErrAlreadyRecording
	case StateIdle, StateStopped:
	default:
		return ErrInvalidTransition
	}

	// A failed start leaves the current cycle untouched, including a
	// stopped recording still waiting for feedback
	if r.device == nil {
		return ErrCaptureUnavailable
	}

	handle, err := r.device.Acquire(ctx)
	if err != nil {
		r.logger.Warn("capture acquire failed", "error", err)
		return fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	if err := handle.Start(); err != nil {
		_, _ = handle.Stop()
		r.logger.Warn("capture start failed", "error", err)
		return fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}

	// A stopped cycle belongs to the previous attempt
	if r.state == StateStopped {
		r.session = r.newSession(r.session.Scenario)
	}
	r.cancelTimersLocked()
	r.epoch++
	r.handle = handle
	r.artifact = nil
	r.feedback = nil
	r.elapsed = 0
	r.state = StateRecording
	r.session.StartTime = r.clock.Now().UTC()
	r.session.Advance(models.ProgressRecording, r.clock.Now())

	epoch := r.epoch
	r.ticker = r.clock.Every(r.cfg.TickInterval, func() { r.tick(epoch) })

	r.logger.Info("recording started", "session_id", r.session.ID, "scenario", r.session.Scenario)
	r.publishLocked()
	return nil
}

// Stop ends the recording, persists the session and schedules feedback.
// A persistence failure is returned but the recorder still moves to Stopped.
func (r *Recorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNotRecording
	}

	r.stopTicker()
	artifact, err := r.handle.Stop()
	r.handle = nil
	if err != nil {
		r.logger.Warn("capture stop failed", "error", err)
		r.artifact = nil
	} else {
		r.artifact = &artifact
	}
	r.state = StateStopped

	r.session.Duration = r.elapsed
	r.session.Finish(r.clock.Now())

	var persistErr error
	if r.persister != nil {
		account, err := r.persister.PersistSession(ctx, r.account, r.session.Clone())
		if err != nil {
			persistErr = err
			r.logger.Error("failed to persist session", "session_id", r.session.ID, "error", err)
		} else {
			r.account = account
			r.persisted = true
		}
	}

	epoch := r.epoch
	r.pending = r.clock.AfterFunc(r.cfg.FeedbackDelay, func() { r.deliverFeedback(epoch) })

	r.logger.Info("recording stopped", "session_id", r.session.ID, "duration", r.elapsed)
	r.publishLocked()
	return persistErr
}

// Reset abandons the current cycle and returns to Idle. An active
// recording is cancelled without being persisted.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRecording && r.handle != nil {
		if _, err := r.handle.Stop(); err != nil {
			r.logger.Warn("capture release failed", "error", err)
		}
		r.handle = nil
	}
	r.toIdleLocked()
	r.logger.Info("recording reset", "session_id", r.session.ID)
	r.publishLocked()
}

// Play simulates playback of the finished recording
func (r *Recorder) Play(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.artifact == nil {
		return ErrNoRecordingAvailable
	}
	if r.playing {
		return ErrPlaybackInProgress
	}

	r.playing = true
	epoch := r.epoch
	r.playback = r.clock.AfterFunc(r.cfg.PlaybackDuration, func() { r.endPlayback(epoch) })
	r.publishLocked()
	return nil
}

// Complete marks the session finished once feedback has been reviewed
func (r *Recorder) Complete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateFeedbackReady || r.session.Completed {
		return ErrInvalidTransition
	}

	r.session.Advance(models.ProgressComplete, r.clock.Now())
	r.syncLocked(ctx)
	r.logger.Info("session completed", "session_id", r.session.ID)
	r.publishLocked()
	return nil
}

// Close cancels every pending callback and releases the device
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle != nil {
		_, _ = r.handle.Stop()
		r.handle = nil
	}
	r.cancelTimersLocked()
	r.epoch++
}

func (r *Recorder) tick(epoch uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if epoch != r.epoch || r.state != StateRecording {
		return
	}
	r.elapsed++
	r.publishLocked()
}

func (r *Recorder) deliverFeedback(epoch uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if epoch != r.epoch || r.state != StateStopped {
		r.logger.Debug("discarding stale feedback", "epoch", epoch, "current", r.epoch)
		return
	}
	r.pending = nil

	req := feedback.Request{Session: r.session.Clone()}
	if r.artifact != nil {
		req.Duration = r.artifact.Duration
		req.Audio = r.artifact.Audio
	}

	fb, err := r.generator.Generate(context.Background(), req)
	if err != nil {
		r.logger.Error("feedback generation failed", "session_id", r.session.ID, "error", err)
		return
	}

	r.feedback = fb
	r.session.Score = fb.ConfidenceLevel
	r.session.Advance(models.ProgressFeedback, r.clock.Now())
	r.state = StateFeedbackReady
	r.syncLocked(context.Background())
	r.publishLocked()
}

func (r *Recorder) endPlayback(epoch uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if epoch != r.epoch || !r.playing {
		return
	}
	r.playing = false
	r.playback = nil
	r.publishLocked()
}

// toIdleLocked clears the cycle. A session that was touched is replaced by
// a fresh one so progress never moves backwards.
func (r *Recorder) toIdleLocked() {
	r.cancelTimersLocked()
	r.epoch++
	r.elapsed = 0
	r.artifact = nil
	r.feedback = nil
	r.state = StateIdle
	if r.persisted || r.session.Progress > models.ProgressNew {
		r.session = r.newSession(r.session.Scenario)
	}
}

func (r *Recorder) cancelTimersLocked() {
	r.stopTicker()
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
	if r.playback != nil {
		r.playback.Stop()
		r.playback = nil
	}
	r.playing = false
}

func (r *Recorder) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
}

func (r *Recorder) syncLocked(ctx context.Context) {
	if !r.persisted || r.persister == nil {
		return
	}
	if err := r.persister.SyncSession(ctx, r.accountID, r.session.Clone()); err != nil {
		if !errors.Is(err, context.Canceled) {
			r.logger.Error("failed to sync session", "session_id", r.session.ID, "error", err)
		}
		return
	}
	if idx := r.account.SessionIndex(r.session.ID); idx != -1 {
		r.account.Sessions[idx] = r.session.Clone()
	}
}

func (r *Recorder) newSession(kind models.ScenarioKind) *models.Session {
	s := models.NewSession(kind)
	s.StartTime = r.clock.Now().UTC()
	r.persisted = false
	return s
}

func (r *Recorder) snapshotLocked() Snapshot {
	return Snapshot{
		AccountID:    r.accountID,
		SessionID:    r.session.ID,
		Scenario:     r.session.Scenario,
		State:        r.state,
		Elapsed:      r.elapsed,
		Progress:     r.session.Progress,
		Completed:    r.session.Completed,
		HasRecording: r.artifact != nil,
		Playing:      r.playing,
		Feedback:     r.feedback.Clone(),
	}
}

func (r *Recorder) publishLocked() {
	if r.observer != nil {
		r.observer(r.snapshotLocked())
	}
}
