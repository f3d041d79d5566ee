// internal/app/features/passwordreset/routes.go
package passwordreset

import "github.com/go-chi/chi/v5"

// Register adds the reset endpoints to r, which is the router mounted at
// /auth.
func Register(r chi.Router, h *Handler) {
	r.Post("/password-reset", h.HandleRequest)
	r.Get("/password-reset/{token}", h.HandleValidate)
	r.Post("/password-reset/{token}", h.HandleReset)
}
