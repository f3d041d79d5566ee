// internal/app/features/invitation/routes.go
package invitation

import (
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.ServeLink)
	return r
}
