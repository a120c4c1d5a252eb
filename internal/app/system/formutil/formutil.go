// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails, the form is re-rendered with the user's
// previously entered values, an error message, and the page chrome. Embed
// Base in a form view model and call SetBase to fill the common fields:
//
//	type importData struct {
//		formutil.Base
//		CSVString string
//	}
//
//	data := importData{CSVString: residual}
//	formutil.SetBase(&data.Base, r, "Import Credits")
//	templates.Render(w, r, "credit_import", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/credithub/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// Base contains common fields for form pages.
type Base struct {
	Title       string
	IsLoggedIn  bool
	UserName    string
	CurrentPath string
	Error       template.HTML
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, r *http.Request, title string) {
	b.Title = title
	if u, ok := auth.CurrentUser(r); ok {
		b.IsLoggedIn = true
		b.UserName = u.Name
	}
	b.CurrentPath = httpnav.CurrentPath(r)
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}
