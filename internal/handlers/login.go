package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	applog "pizzacost/internal/log"
	"pizzacost/internal/views/pages"
)

const loginFailedMessage = "We were unable to sign you in. Please try again."

// Login renders the authentication view and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderLogin(w, r, popLoginMessage(r), "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		if email == "" || password == "" {
			renderLogin(w, r, "Email and password are required.", email)
			return
		}

		if !authenticate(w, r, email, password) {
			applog.Debug(r.Context(), "authentication failed", "email", strings.ToLower(email))
			message := popLoginMessage(r)
			if message == "" {
				message = loginFailedMessage
			}
			renderLogin(w, r, message, email)
			return
		}

		applog.Info(r.Context(), "user signed in", "email", strings.ToLower(email))
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func popLoginMessage(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(r.Context(), sessionLoginMessageKey)
}

func renderLogin(w http.ResponseWriter, r *http.Request, message, email string) {
	var component templ.Component = pages.Login(message, email)
	if isHTMX(r) {
		component = pages.LoginPartial(message, email)
	}
	renderComponent(w, r, component)
}
