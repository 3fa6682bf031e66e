package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/services/auth"
	"github.com/mcoot/folio/internal/web/middleware"
	"github.com/mcoot/folio/internal/web/templates/layout"
	"github.com/mcoot/folio/internal/web/templates/pages"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAccount(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Register(pages.RegisterData{
		PageData: pageData(r, "Register"),
	}))
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/register", middleware.FlashDanger, "Invalid form data.")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	_, err := h.authService.Register(r.Context(), username, email, password)
	switch {
	case err == nil:
		redirectWithFlash(w, r, "/login", middleware.FlashSuccess, "Registration successful. Please login.")
	case errors.Is(err, model.ErrAccountExists):
		redirectWithFlash(w, r, "/register", middleware.FlashDanger, "User or email already exists.")
	case errors.Is(err, auth.ErrMissingFields):
		redirectWithFlash(w, r, "/register", middleware.FlashDanger, "Username, email and password are required.")
	default:
		redirectWithFlash(w, r, "/register", middleware.FlashDanger, "Registration failed.")
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAccount(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Login(pages.LoginData{
		PageData: pageData(r, "Login"),
		Next:     r.URL.Query().Get("next"),
	}))
}

// Login handles login form submission. Every failure shows the same message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	session, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		h.renderLoginError(w, r, email, next)
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresAt)
	redirectWithFlash(w, r, safeNext(next, "/dashboard"), middleware.FlashSuccess, "Logged in successfully.")
}

// Logout ends the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		_ = h.authService.Logout(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	redirectWithFlash(w, r, "/", middleware.FlashInfo, "Logged out.")
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, email, next string) {
	data := pages.LoginData{
		PageData: pageData(r, "Login"),
		Email:    email,
		Next:     next,
	}
	data.Flash = &layout.FlashMessage{Type: middleware.FlashDanger, Message: "Invalid credentials."}

	render(w, r, http.StatusOK, pages.Login(data))
}
