package creditimport

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the import routes under the path where the caller mounts it.
// Typically: r.Mount("/admin/credits", creditimport.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.requireImporter)
		r.Get("/import", h.ServeImport)
		r.Get("/imports", h.ServeHistory)
	})
	// POST authorizes inside the handler so rejections are audited.
	r.Post("/import", h.HandleImport)

	return r
}
