package recommendations

import (
	"net/http"

	"github.com/recshelf/recshelf-api/internal/api/apperr"
	"github.com/recshelf/recshelf-api/internal/api/httpx"
	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
)

// List returns every raw recommendation link, undeduplicated.
func List(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recs, err := st.GetAllRecommendations(r.Context())
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to fetch recommendations")
			return
		}
		if recs == nil {
			recs = []models.Recommendation{}
		}
		httpx.WriteJSON(w, http.StatusOK, recs)
	})
}
