package recommenders

import (
	"errors"
	"log"
	"net/http"

	"github.com/recshelf/recshelf-api/internal/api/apperr"
	"github.com/recshelf/recshelf-api/internal/api/httpx"
	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
)

func Get(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.PathID(r, "id")
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid recommender id")
			return
		}

		rec, err := st.GetRecommenderByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			httpx.ErrorJSON(w, http.StatusNotFound, "recommender not found")
			return
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to fetch recommender")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, rec)
	})
}

// Books returns the complete recommendations made by one recommender, at
// most one per distinct book.
func Books(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.PathID(r, "id")
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid recommender id")
			return
		}

		if _, err := st.GetRecommenderByID(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.ErrorJSON(w, http.StatusNotFound, "recommender not found")
				return
			}
			apperr.HandleDBError(w, r, err, "Failed to fetch recommender")
			return
		}

		recs, err := st.GetCompleteRecommendationsByRecommenderID(r.Context(), id)
		if errors.Is(err, store.ErrIntegrity) {
			log.Printf("[recommenders] integrity fault for recommender %d: %v", id, err)
			httpx.ErrorJSON(w, http.StatusInternalServerError, "failed to fetch books")
			return
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to fetch books")
			return
		}
		if recs == nil {
			recs = []models.CompleteRecommendation{}
		}
		httpx.WriteJSON(w, http.StatusOK, recs)
	})
}
