package pages

import (
	"context"

	"github.com/a-h/templ"

	"pizzacost/internal/views/components"
	"pizzacost/internal/views/layout"
	"pizzacost/models"
)

func authField(m *components.Markup, label, name, kind, value, autocomplete string) {
	m.Raw(`<label class="flex flex-col gap-1 text-sm">`)
	m.Text(label)
	m.Raw(`<input class="rounded border px-3 py-2" required`)
	m.Attr("type", kind)
	m.Attr("name", name)
	m.Attr("autocomplete", autocomplete)
	if value != "" {
		m.Attr("value", value)
	}
	m.Raw("></label>")
}

// LoginPartial renders the sign-in form for HTMX swaps.
func LoginPartial(message, email string) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<section id="auth-panel" class="workspace-surface mx-auto mt-16 max-w-md rounded-lg p-8">`)
		m.Raw(`<h1 class="pb-2 text-2xl font-semibold">Sign in</h1>`)
		m.Raw(`<p class="pb-6 workspace-muted">Price every pizza from what its ingredients cost today.</p>`)
		m.Component(ctx, components.Banner("error", message))
		m.Raw(`<form method="post" action="/login" hx-post="/login" hx-target="#auth-panel" hx-swap="outerHTML" class="flex flex-col gap-4">`)
		authField(m, "Email", "email", "email", email, "email")
		authField(m, "Password", "password", "password", "", "current-password")
		m.Raw(`<button type="submit" class="rounded px-4 py-2 font-semibold workspace-accent">Sign in</button>`)
		m.Raw(`</form><p class="pt-4 text-sm">New here? <a href="/signup" class="workspace-accent">Create an account</a></p></section>`)
	})
}

// Login renders the full sign-in page.
func Login(message, email string) templ.Component {
	return layout.Layout("Sign in · Pizzacost", nil, LoginPartial(message, email), false, layout.ThemeByID(models.DefaultTheme))
}

// SignupPartial renders the registration form for HTMX swaps.
func SignupPartial(message, name, email string) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<section id="auth-panel" class="workspace-surface mx-auto mt-16 max-w-md rounded-lg p-8">`)
		m.Raw(`<h1 class="pb-6 text-2xl font-semibold">Create your account</h1>`)
		m.Component(ctx, components.Banner("error", message))
		m.Raw(`<form method="post" action="/signup" hx-post="/signup" hx-target="#auth-panel" hx-swap="outerHTML" class="flex flex-col gap-4">`)
		authField(m, "Name", "name", "text", name, "name")
		authField(m, "Email", "email", "email", email, "email")
		authField(m, "Password", "password", "password", "", "new-password")
		authField(m, "Confirm password", "confirm_password", "password", "", "new-password")
		m.Raw(`<button type="submit" class="rounded px-4 py-2 font-semibold workspace-accent">Create account</button>`)
		m.Raw(`</form><p class="pt-4 text-sm">Already registered? <a href="/login" class="workspace-accent">Sign in</a></p></section>`)
	})
}

// Signup renders the full registration page.
func Signup(message, name, email string) templ.Component {
	return layout.Layout("Sign up · Pizzacost", nil, SignupPartial(message, name, email), false, layout.ThemeByID(models.DefaultTheme))
}
