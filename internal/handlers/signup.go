package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"gorm.io/gorm"

	applog "pizzacost/internal/log"
	"pizzacost/internal/views/pages"
)

const (
	minPasswordLength    = 8
	signupFailedMessage  = "We couldn't create your account right now. Please try again."
	signupSessionMessage = "Your account was created, but we couldn't sign you in. Please log in."
)

// Signup displays the account creation form and processes new registrations.
func Signup(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling signup request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderSignup(w, r, "", "", "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(r.Context(), "registration dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			http.Error(w, "registration not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse signup form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.PostFormValue("name"))
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		if message := validateSignup(email, password, r.PostFormValue("confirm_password")); message != "" {
			renderSignup(w, r, message, name, email)
			return
		}

		_, err := findUserByEmail(r, email)
		switch {
		case err == nil:
			renderSignup(w, r, "An account with that email already exists.", name, email)
			return
		case !errors.Is(err, gorm.ErrRecordNotFound):
			applog.Error(r.Context(), "failed to check existing user", "error", err)
			renderSignup(w, r, signupFailedMessage, name, email)
			return
		}

		user, err := createUser(r, email, name, password)
		if err != nil {
			applog.Error(r.Context(), "failed to create user", "error", err)
			renderSignup(w, r, signupFailedMessage, name, email)
			return
		}
		applog.Info(r.Context(), "user registered", "userID", user.ID)

		if err := establishSession(r, user); err != nil {
			applog.Error(r.Context(), "failed to establish session after signup", "error", err)
			renderSignup(w, r, signupSessionMessage, name, email)
			return
		}
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// validateSignup returns the message shown for an invalid registration, or
// an empty string when the input is acceptable.
func validateSignup(email, password, confirm string) string {
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return "Please provide a valid email address."
	case len(password) < minPasswordLength:
		return "Password must be at least 8 characters long."
	case password != confirm:
		return "Passwords do not match."
	default:
		return ""
	}
}

func renderSignup(w http.ResponseWriter, r *http.Request, message, name, email string) {
	var component templ.Component = pages.Signup(message, name, email)
	if isHTMX(r) {
		component = pages.SignupPartial(message, name, email)
	}
	renderComponent(w, r, component)
}
