package plans_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/apollo/internal/app/features/plans"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/dalemusser/apollo/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestList(t *testing.T) {
	rec := testutil.NewRecorder()
	plans.Routes().ServeHTTP(rec, testutil.JSONRequest(t, "GET", "/", nil))
	rec.AssertStatus(t, http.StatusOK)

	var got []models.Plan
	rec.DecodeJSON(t, &got)
	if diff := cmp.Diff(models.Plans, got); diff != "" {
		t.Errorf("plans (-want +got):\n%s", diff)
	}

	popular := 0
	for _, p := range got {
		if p.Popular {
			popular++
		}
	}
	if popular != 1 {
		t.Errorf("expected exactly one popular plan, got %d", popular)
	}
}
