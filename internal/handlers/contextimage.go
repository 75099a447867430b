package handlers

import "net/http"

type contextImageRequest struct {
	Prompt string `json:"prompt"`
}

// ContextImage picks a backdrop photo for the practice prompt
func (h *Handler) ContextImage(w http.ResponseWriter, r *http.Request) {
	var req contextImageRequest
	if !h.decode(w, r, &req) {
		return
	}

	img, err := h.images.Generate(r.Context(), req.Prompt)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Image generated successfully!",
		"image":   img,
	})
}
