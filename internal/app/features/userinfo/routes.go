// internal/app/features/userinfo/routes.go
package userinfo

import (
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register adds GET /info and GET /invited to r, which is the router mounted
// at /user. Static segments win over the users resource's /{id}.
func Register(r chi.Router, h *Handler) {
	r.With(auth.RequireSignedIn).Get("/info", h.ServeUserInfo)
	r.With(auth.RequireSignedIn).Get("/invited", h.ServeInvited)
}
