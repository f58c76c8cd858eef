package books

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

// AdminCreate handles the combined one-shot create: find-or-create the book
// and recommender, always create the recommendation linking them.
func AdminCreate(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.CombinedInsert
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if ve := models.ValidateCombinedInsert(in); ve != nil {
			apperr.WriteValidation(w, r, ve)
			return
		}

		cr, err := st.CreateCompleteRecommendation(r.Context(), in)
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to create recommendation")
			return
		}
		c.Bump(r.Context())
		httpx.WriteJSON(w, http.StatusCreated, cr)
	})
}

// AdminPatch applies partial updates; omitted fields keep their values.
func AdminPatch(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.PathID(r, "id")
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
			return
		}

		var patch models.BookPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if patch.Title != nil && *patch.Title == "" {
			apperr.WriteValidation(w, r, &models.ValidationError{
				Fields: []models.FieldError{{Field: "title", Message: "title is required"}},
			})
			return
		}
		if patch.Author != nil && *patch.Author == "" {
			apperr.WriteValidation(w, r, &models.ValidationError{
				Fields: []models.FieldError{{Field: "author", Message: "author is required"}},
			})
			return
		}

		book, err := st.UpdateBook(r.Context(), id, patch)
		if errors.Is(err, store.ErrNotFound) {
			httpx.ErrorJSON(w, http.StatusNotFound, "book not found")
			return
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to update book")
			return
		}
		c.Bump(r.Context())
		httpx.WriteJSON(w, http.StatusOK, book)
	})
}

// AdminDelete removes the book and every recommendation pointing at it.
func AdminDelete(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.PathID(r, "id")
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid book id")
			return
		}

		found, err := st.DeleteBook(r.Context(), id)
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to delete book")
			return
		}
		if !found {
			httpx.ErrorJSON(w, http.StatusNotFound, "book not found")
			return
		}
		c.Bump(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}
