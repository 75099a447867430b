package handlers

import (
	"net/http"

	"github.com/gungunaswani/GroomifyAI/internal/middleware"
	"github.com/gungunaswani/GroomifyAI/internal/websocket"
)

// Routes builds the API mux. Everything except signup, login, logout,
// password strength, the scenario catalog and the health check requires a
// logged-in account.
func (h *Handler) Routes(authMiddleware *middleware.Auth, hub *websocket.Hub) *http.ServeMux {
	protect := func(fn http.HandlerFunc) http.Handler {
		return authMiddleware.RequireAuth(fn)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)

	// Public routes
	mux.HandleFunc("POST /api/signup", h.Signup)
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.Logout)
	mux.HandleFunc("POST /api/password-strength", h.PasswordStrength)
	mux.HandleFunc("GET /api/scenarios", h.Scenarios)

	// Protected routes
	mux.Handle("GET /api/me", protect(h.Me))
	mux.Handle("GET /api/dashboard", protect(h.Dashboard))
	mux.Handle("GET /api/progress", protect(h.Progress))

	mux.Handle("GET /api/practice", protect(h.Practice))
	mux.Handle("POST /api/practice/scenario", protect(h.SelectScenario))
	mux.Handle("POST /api/practice/start", protect(h.StartRecording))
	mux.Handle("POST /api/practice/stop", protect(h.StopRecording))
	mux.Handle("POST /api/practice/play", protect(h.PlayRecording))
	mux.Handle("POST /api/practice/reset", protect(h.ResetRecording))
	mux.Handle("POST /api/practice/complete", protect(h.CompleteSession))
	mux.Handle("POST /api/context-image", protect(h.ContextImage))
	mux.Handle("GET /api/practice/stream", protect(websocket.HandleStream(hub, h.StreamSource)))

	return mux
}
