package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes builds the member router. Read endpoints sit behind readGuard,
// write endpoints behind writeGuard.
func Routes(h Handle, readGuard, writeGuard func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(readGuard)
		r.Get("/", h.GetMembers)
		r.Get("/{id}", h.GetMember)
	})

	r.Group(func(r chi.Router) {
		r.Use(writeGuard)
		r.Post("/", h.CreateMember)
		r.Put("/{id}", h.UpdateMember)
		r.Delete("/{id}", h.DeleteMember)
	})

	return r
}
