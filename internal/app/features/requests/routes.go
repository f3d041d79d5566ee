// internal/app/features/requests/routes.go
package requests

import (
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the requests resource, typically at "/request".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.With(authz.RequirePermission(models.ActionCreate, models.ModuleRequests)).Post("/", h.HandleCreate)
	r.With(authz.RequirePermission(models.ActionUpdate, models.ModuleRequests)).Put("/{id}", h.HandleUpdate)
	r.With(authz.RequirePermission(models.ActionDelete, models.ModuleRequests)).Delete("/{id}", h.HandleDelete)

	return r
}
