package recommenders

import (
	"encoding/json"
	"net/http"

	"github.com/recshelf/recshelf-api/internal/api/apperr"
	"github.com/recshelf/recshelf-api/internal/api/httpx"
	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/cache"
)

func List(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if buf, ok := c.Get(ctx, "recommenders:all"); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(buf)
			return
		}

		recs, err := st.GetAllRecommenders(ctx)
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to fetch recommenders")
			return
		}
		if recs == nil {
			recs = []models.Recommender{}
		}

		buf, err := json.Marshal(recs)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "failed to fetch recommenders")
			return
		}
		c.Set(ctx, "recommenders:all", buf)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(buf)
	})
}

// Search matches name or organization, case-insensitively.
func Search(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		var (
			recs []models.Recommender
			err  error
		)
		if q == "" {
			recs, err = st.GetAllRecommenders(r.Context())
		} else {
			recs, err = st.SearchRecommenders(r.Context(), q)
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to search recommenders")
			return
		}
		if recs == nil {
			recs = []models.Recommender{}
		}
		httpx.WriteJSON(w, http.StatusOK, recs)
	})
}
