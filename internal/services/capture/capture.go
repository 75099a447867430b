// Package capture abstracts the audio input device used while recording
package capture

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrUnavailable means the device is missing or permission was denied
var ErrUnavailable = errors.New("audio capture unavailable")

// ErrNotStarted is returned when stopping a handle that never started
var ErrNotStarted = errors.New("capture handle not started")

// Artifact is the finalized output of a recording
type Artifact struct {
	Duration time.Duration
	MIMEType string
	Audio    []byte
}

// Device grants capture handles. Acquire may block while the environment
// asks for permission; it must honour ctx.
type Device interface {
	Acquire(ctx context.Context) (Handle, error)
}

// Handle is one acquired capture session
type Handle interface {
	Start() error
	// Stop ends capture, releases the device and returns the recording.
	Stop() (Artifact, error)
}

// Simulated stands in for a microphone. It records no audio but measures
// how long the handle was running.
type Simulated struct {
	mu      sync.Mutex
	enabled bool
	now     func() time.Time
}

// NewSimulated creates a simulated device. A disabled device behaves as if
// permission was denied. A nil now uses time.Now.
func NewSimulated(enabled bool, now func() time.Time) *Simulated {
	if now == nil {
		now = time.Now
	}
	return &Simulated{enabled: enabled, now: now}
}

// SetEnabled toggles whether Acquire succeeds
func (d *Simulated) SetEnabled(enabled bool) {
	d.mu.Lock()
	d.enabled = enabled
	d.mu.Unlock()
}

// Acquire returns a new handle, or ErrUnavailable when disabled
func (d *Simulated) Acquire(ctx context.Context) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return nil, ErrUnavailable
	}
	return &simulatedHandle{now: d.now}, nil
}

type simulatedHandle struct {
	mu      sync.Mutex
	now     func() time.Time
	started time.Time
	running bool
}

func (h *simulatedHandle) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = h.now()
	h.running = true
	return nil
}

func (h *simulatedHandle) Stop() (Artifact, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return Artifact{}, ErrNotStarted
	}
	h.running = false
	return Artifact{
		Duration: h.now().Sub(h.started),
		MIMEType: "audio/wav",
	}, nil
}
