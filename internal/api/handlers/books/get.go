package books

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
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
			return
		}

		book, err := st.GetBookByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			httpx.ErrorJSON(w, http.StatusNotFound, "book not found")
			return
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to fetch book")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, book)
	})
}

// Recommenders returns the complete recommendations for one book, at most
// one per distinct recommender.
func Recommenders(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.PathID(r, "id")
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
			return
		}

		if _, err := st.GetBookByID(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.ErrorJSON(w, http.StatusNotFound, "book not found")
				return
			}
			apperr.HandleDBError(w, r, err, "Failed to fetch book")
			return
		}

		recs, err := st.GetCompleteRecommendationsByBookID(r.Context(), id)
		if errors.Is(err, store.ErrIntegrity) {
			// Broken referential integrity is a server fault, never a 404.
			log.Printf("[books] integrity fault for book %d: %v", id, err)
			httpx.ErrorJSON(w, http.StatusInternalServerError, "failed to fetch recommenders")
			return
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to fetch recommenders")
			return
		}
		if recs == nil {
			recs = []models.CompleteRecommendation{}
		}
		httpx.WriteJSON(w, http.StatusOK, recs)
	})
}
