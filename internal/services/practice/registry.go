package practice

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/gungunaswani/GroomifyAI/internal/services/capture"
	"github.com/gungunaswani/GroomifyAI/internal/services/feedback"
)

// Publisher fans recorder snapshots out to interested clients
type Publisher interface {
	Publish(accountID uuid.UUID, snap Snapshot)
}

// Registry keeps one recorder per logged-in account. A recorder, and with
// it a fresh session, is created the first time the practice page loads.
type Registry struct {
	cfg       Config
	device    capture.Device
	clock     Clock
	generator feedback.Generator
	persister SessionPersister
	publisher Publisher
	logger    *slog.Logger

	mu        sync.Mutex
	recorders map[uuid.UUID]*Recorder
}

// NewRegistry creates a registry that builds recorders from the given parts
func NewRegistry(cfg Config, deps Deps, publisher Publisher) *Registry {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Registry{
		cfg:       cfg,
		device:    deps.Device,
		clock:     deps.Clock,
		generator: deps.Generator,
		persister: deps.Persister,
		publisher: publisher,
		logger:    deps.Logger,
		recorders: make(map[uuid.UUID]*Recorder),
	}
}

// Get returns the account's recorder, creating it if needed
func (g *Registry) Get(account *models.Account) *Recorder {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.recorders[account.ID]; ok {
		return r
	}

	deps := Deps{
		Device:    g.device,
		Clock:     g.clock,
		Generator: g.generator,
		Persister: g.persister,
		Logger:    g.logger,
	}
	if g.publisher != nil {
		id := account.ID
		pub := g.publisher
		deps.Observer = func(s Snapshot) { pub.Publish(id, s) }
	}

	r := NewRecorder(account, g.cfg, deps)
	g.recorders[account.ID] = r
	return r
}

// Lookup returns an existing recorder without creating one
func (g *Registry) Lookup(accountID uuid.UUID) (*Recorder, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.recorders[accountID]
	return r, ok
}

// Drop closes and forgets the account's recorder, e.g. on logout
func (g *Registry) Drop(accountID uuid.UUID) {
	g.mu.Lock()
	r, ok := g.recorders[accountID]
	delete(g.recorders, accountID)
	g.mu.Unlock()

	if ok {
		r.Close()
	}
}

// Close shuts down every recorder
func (g *Registry) Close() {
	g.mu.Lock()
	recorders := g.recorders
	g.recorders = make(map[uuid.UUID]*Recorder)
	g.mu.Unlock()

	for _, r := range recorders {
		r.Close()
	}
}
