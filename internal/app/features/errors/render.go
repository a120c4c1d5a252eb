// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/credithub/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a "sign in required" page carrying msg.
// The caller sets the status code.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Please sign in to continue."
	}
	render(w, r, "Sign in required", msg, "/")
}

// RenderForbidden shows a friendly access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	render(w, r, "Access denied", msg, backURL)
}

// RenderServerError shows a generic failure page with a message.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg string) {
	render(w, r, "Something went wrong", msg, "/")
}

func render(w http.ResponseWriter, r *http.Request, title, msg, backURL string) {
	data := pageData{
		Title:   title,
		Message: msg,
		BackURL: backURL,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.UserName = u.Name
	}

	templates.Render(w, r, "error_page", data)
}
