package handlers

import (
	"net/http"
	"time"

	"github.com/gungunaswani/GroomifyAI/internal/middleware"
	"github.com/gungunaswani/GroomifyAI/internal/models"
)

// Dashboard returns the profile summary and session timeline
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r)
	if account == nil {
		h.jsonError(w, "Please log in to access this page.", http.StatusUnauthorized)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": h.analyticsService.Summary(account),
		"history": h.analyticsService.History(account, time.Now()),
	})
}

// Progress returns the per-day score chart for ?period=week|month|year
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r)
	if account == nil {
		h.jsonError(w, "Please log in to access this page.", http.StatusUnauthorized)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = models.PeriodWeek
	}

	points, err := h.analyticsService.ProgressSeries(account, period, time.Now())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"period": period,
		"points": points,
	})
}
