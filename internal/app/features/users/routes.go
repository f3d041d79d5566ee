// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the users resource, typically at "/user".
//
//	h := users.NewHandler(userstore.New(db), audit, logger)
//	r.Mount("/user", users.Routes(h))
//
// PUT is gated inside the handler because editing oneself needs no grant.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.With(authz.RequirePermission(models.ActionCreate, models.ModuleUsers)).Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.With(authz.RequirePermission(models.ActionDelete, models.ModuleUsers)).Delete("/{id}", h.HandleDelete)

	return r
}
