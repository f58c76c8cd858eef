package recommendations

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

// AdminCreate links an existing book to an existing recommender. Both
// referenced rows must exist up front; dangling links are refused here
// rather than surfacing later as integrity faults.
func AdminCreate(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.InsertRecommendation
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if ve := models.ValidateRecommendationInsert(in); ve != nil {
			apperr.WriteValidation(w, r, ve)
			return
		}

		if _, err := st.GetBookByID(r.Context(), in.BookID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				apperr.WriteValidation(w, r, &models.ValidationError{
					Fields: []models.FieldError{{Field: "bookId", Message: "book does not exist"}},
				})
				return
			}
			apperr.HandleDBError(w, r, err, "Failed to create recommendation")
			return
		}
		if _, err := st.GetRecommenderByID(r.Context(), in.RecommenderID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				apperr.WriteValidation(w, r, &models.ValidationError{
					Fields: []models.FieldError{{Field: "recommenderId", Message: "recommender does not exist"}},
				})
				return
			}
			apperr.HandleDBError(w, r, err, "Failed to create recommendation")
			return
		}

		rec, err := st.CreateRecommendation(r.Context(), in)
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to create recommendation")
			return
		}
		c.Bump(r.Context())
		httpx.WriteJSON(w, http.StatusCreated, rec)
	})
}

func AdminPatch(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.PathID(r, "id")
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid recommendation id")
			return
		}

		var patch models.RecommendationPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		rec, err := st.UpdateRecommendation(r.Context(), id, patch)
		if errors.Is(err, store.ErrNotFound) {
			httpx.ErrorJSON(w, http.StatusNotFound, "recommendation not found")
			return
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to update recommendation")
			return
		}
		c.Bump(r.Context())
		httpx.WriteJSON(w, http.StatusOK, rec)
	})
}
