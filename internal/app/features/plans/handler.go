// internal/app/features/plans/handler.go
package plans

import (
	"net/http"

	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes serves the public plan catalogue at GET /.
func Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", list)
	return r
}

func list(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, models.Plans)
}
