package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/middleware"
	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/gungunaswani/GroomifyAI/internal/services/practice"
)

// practiceView is what the practice page renders
type practiceView struct {
	Message  string            `json:"message,omitempty"`
	Scenario models.Scenario   `json:"scenario"`
	Snapshot practice.Snapshot `json:"snapshot"`
}

func (h *Handler) recorder(w http.ResponseWriter, r *http.Request) (*practice.Recorder, bool) {
	account := middleware.GetAccount(r)
	if account == nil {
		h.jsonError(w, "Please log in to access this page.", http.StatusUnauthorized)
		return nil, false
	}
	return h.recorders.Get(account), true
}

func (h *Handler) respondPractice(w http.ResponseWriter, rec *practice.Recorder, message string) {
	snap := rec.Snapshot()
	scenario, _ := models.LookupScenario(snap.Scenario)
	h.writeJSON(w, http.StatusOK, practiceView{
		Message:  message,
		Scenario: scenario,
		Snapshot: snap,
	})
}

// Practice returns the recorder state for the logged-in account
func (h *Handler) Practice(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recorder(w, r)
	if !ok {
		return
	}
	h.respondPractice(w, rec, "")
}

// SelectScenario switches the scenario before recording
func (h *Handler) SelectScenario(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recorder(w, r)
	if !ok {
		return
	}

	var req struct {
		Scenario models.ScenarioKind `json:"scenario"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	if err := rec.SelectScenario(req.Scenario); err != nil {
		h.fail(w, err)
		return
	}
	h.respondPractice(w, rec, "")
}

// StartRecording begins a recording
func (h *Handler) StartRecording(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recorder(w, r)
	if !ok {
		return
	}
	if err := rec.Start(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	h.respondPractice(w, rec, "Recording started. Speak clearly into your microphone.")
}

// StopRecording ends the recording and queues feedback
func (h *Handler) StopRecording(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recorder(w, r)
	if !ok {
		return
	}
	if err := rec.Stop(r.Context()); err != nil {
		// Any other error came from storage after the recorder stopped
		if errors.Is(err, practice.ErrNotRecording) {
			h.fail(w, err)
			return
		}
		h.logger.Error("session not saved", "error", err)
		h.respondPractice(w, rec, "Recording complete, but your progress could not be saved.")
		return
	}
	h.respondPractice(w, rec, "Recording complete! Processing your speech...")
}

// PlayRecording simulates playback
func (h *Handler) PlayRecording(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recorder(w, r)
	if !ok {
		return
	}
	if err := rec.Play(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	h.respondPractice(w, rec, "Playing your recording...")
}

// ResetRecording abandons the current attempt
func (h *Handler) ResetRecording(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recorder(w, r)
	if !ok {
		return
	}
	rec.Reset()
	h.respondPractice(w, rec, "Recording interface reset.")
}

// CompleteSession marks the reviewed session finished
func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.recorder(w, r)
	if !ok {
		return
	}
	if err := rec.Complete(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	h.respondPractice(w, rec, "Session completed! Great job!")
}

// StreamSource feeds the websocket handler the caller's account and snapshot
func (h *Handler) StreamSource(r *http.Request) (uuid.UUID, practice.Snapshot, bool) {
	account := middleware.GetAccount(r)
	if account == nil {
		return uuid.Nil, practice.Snapshot{}, false
	}
	return account.ID, h.recorders.Get(account).Snapshot(), true
}
