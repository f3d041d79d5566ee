// internal/app/features/teams/routes.go
package teams

import (
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the teams resource, typically at "/team".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.With(authz.RequirePermission(models.ActionCreate, models.ModuleTeams)).Post("/", h.HandleCreate)
	r.With(authz.RequirePermission(models.ActionUpdate, models.ModuleTeams)).Put("/{id}", h.HandleUpdate)
	r.With(authz.RequirePermission(models.ActionDelete, models.ModuleTeams)).Delete("/{id}", h.HandleDelete)

	return r
}
