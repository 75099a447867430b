// Package handlers provides the JSON API over the practice, auth and
// analytics services
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gungunaswani/GroomifyAI/internal/config"
	"github.com/gungunaswani/GroomifyAI/internal/services/analytics"
	"github.com/gungunaswani/GroomifyAI/internal/services/auth"
	"github.com/gungunaswani/GroomifyAI/internal/services/contextimage"
	"github.com/gungunaswani/GroomifyAI/internal/services/practice"
	"github.com/gungunaswani/GroomifyAI/internal/storage"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg              *config.Config
	logger           *slog.Logger
	authService      *auth.Service
	analyticsService *analytics.Service
	recorders        *practice.Registry
	images           *contextimage.Service
}

// New creates a new handler with all dependencies
func New(
	cfg *config.Config,
	logger *slog.Logger,
	authService *auth.Service,
	analyticsService *analytics.Service,
	recorders *practice.Registry,
	images *contextimage.Service,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:              cfg,
		logger:           logger,
		authService:      authService,
		analyticsService: analyticsService,
		recorders:        recorders,
		images:           images,
	}
}

// Healthz reports that the server is up
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", "error", err)
	}
}

// jsonError writes a JSON error response
func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON body into v
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.jsonError(w, "Invalid request", http.StatusBadRequest)
		return false
	}
	return true
}

// fail maps a service error to a status code and user-facing message
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		h.jsonError(w, verr.Message, http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.jsonError(w, "Invalid email or password.", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrDuplicateEmail):
		h.jsonError(w, "An account with this email already exists.", http.StatusConflict)
	case errors.Is(err, auth.ErrNotLoggedIn), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrSessionExpired):
		h.jsonError(w, "Please log in to access this page.", http.StatusUnauthorized)
	case errors.Is(err, storage.ErrAccountNotFound):
		h.jsonError(w, "Account not found.", http.StatusNotFound)
	case errors.Is(err, practice.ErrCaptureUnavailable):
		h.jsonError(w, "Unable to access microphone. Please check your permissions.", http.StatusForbidden)
	case errors.Is(err, contextimage.ErrEmptyPrompt):
		h.jsonError(w, "Please enter a prompt for image generation.", http.StatusBadRequest)
	case errors.Is(err, practice.ErrUnknownScenario), errors.Is(err, analytics.ErrUnknownPeriod):
		h.jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, practice.ErrAlreadyRecording),
		errors.Is(err, practice.ErrNotRecording),
		errors.Is(err, practice.ErrNoRecordingAvailable),
		errors.Is(err, practice.ErrPlaybackInProgress),
		errors.Is(err, practice.ErrInvalidTransition):
		h.jsonError(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("request failed", "error", err)
		h.jsonError(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
	}
}
