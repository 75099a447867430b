package handlers

import (
	"net/http"
	"time"

	"github.com/gungunaswani/GroomifyAI/internal/middleware"
	"github.com/gungunaswani/GroomifyAI/internal/models"
	"github.com/gungunaswani/GroomifyAI/internal/services/auth"
)

// accountView is an account without its credential hash
type accountView struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	JoinDate time.Time    `json:"join_date"`
	Stats    models.Stats `json:"stats"`
}

func viewAccount(a *models.Account) accountView {
	return accountView{
		ID:       a.ID.String(),
		Name:     a.Name,
		Email:    a.Email,
		JoinDate: a.JoinDate,
		Stats:    a.Stats,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles account registration. It does not log in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var input auth.SignupInput
	if !h.decode(w, r, &input) {
		return
	}

	account, err := h.authService.Signup(r.Context(), input)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully! Please log in.",
		"account": viewAccount(account),
	})
}

// Login handles login and sets the session cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	prev, _ := h.authService.Current(r.Context())

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}

	// Logging in as someone else ends the previous account's practice
	if prev != nil && prev.ID != result.Account.ID {
		h.recorders.Drop(prev.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.Expires,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful! Redirecting...",
		"account": viewAccount(result.Account),
		"token":   result.Token,
	})
}

// Logout clears the current user and the session cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if account, err := h.authService.Current(r.Context()); err == nil {
		h.recorders.Drop(account.ID)
	}
	h.authService.Logout(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "You have been logged out successfully.",
	})
}

// Me returns the logged-in account
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r)
	if account == nil {
		h.jsonError(w, "Please log in to access this page.", http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, viewAccount(account))
}

// PasswordStrength rates a password while the signup form is filled in
func (h *Handler) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	strength := auth.PasswordStrength(req.Password)
	h.writeJSON(w, http.StatusOK, map[string]string{
		"strength": string(strength),
		"label":    strength.Label(),
	})
}
