package handlers

import (
	"net/http"

	"github.com/gungunaswani/GroomifyAI/internal/models"
)

// Scenarios lists the practice scenario catalog
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": models.AllScenarios(),
		"default":   models.DefaultScenario,
	})
}
