package books

import (
	"encoding/json"
	"net/http"

	"github.com/recshelf/recshelf-api/internal/api/apperr"
	"github.com/recshelf/recshelf-api/internal/api/httpx"
	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/cache"
)

// List serves the full catalogue, read through the shared list cache.
func List(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if buf, ok := c.Get(ctx, "books:all"); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(buf)
			return
		}

		books, err := st.GetAllBooks(ctx)
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to fetch books")
			return
		}
		if books == nil {
			books = []models.Book{}
		}

		buf, err := json.Marshal(books)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "failed to fetch books")
			return
		}
		c.Set(ctx, "books:all", buf)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(buf)
	})
}

// Search filters by case-insensitive substring against title or author.
// An empty query falls back to the full list, mirroring the browse page.
func Search(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		var (
			books []models.Book
			err   error
		)
		if q == "" {
			books, err = st.GetAllBooks(r.Context())
		} else {
			books, err = st.SearchBooks(r.Context(), q)
		}
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to search books")
			return
		}
		if books == nil {
			books = []models.Book{}
		}
		httpx.WriteJSON(w, http.StatusOK, books)
	})
}
