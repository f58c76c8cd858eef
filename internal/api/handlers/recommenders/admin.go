package recommenders

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/recshelf/recshelf-api/internal/api/apperr"
	"github.com/recshelf/recshelf-api/internal/api/httpx"
	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/cache"
)

func AdminPatch(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.PathID(r, "id")
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid recommender id")
			return
		}

		var patch models.RecommenderPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if patch.Name != nil && *patch.Name == "" {
			apperr.WriteValidation(w, r, &models.ValidationError{
				Fields: []models.FieldError{{Field: "name", Message: "name is required"}},
			})
			return
		}

		rec, err := st.UpdateRecommender(r.Context(), id, patch)
		if errors.Is(err, store.ErrNotFound) {
			httpx.ErrorJSON(w, http.StatusNotFound, "recommender not found")
			return
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to update recommender")
			return
		}
		c.Bump(r.Context())
		httpx.WriteJSON(w, http.StatusOK, rec)
	})
}

// AdminDelete removes the recommender and every recommendation pointing at
// it, in that order.
func AdminDelete(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.PathID(r, "id")
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid recommender id")
			return
		}

		found, err := st.DeleteRecommender(r.Context(), id)
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to delete recommender")
			return
		}
		if !found {
			httpx.ErrorJSON(w, http.StatusNotFound, "recommender not found")
			return
		}
		c.Bump(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}
