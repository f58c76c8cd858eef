package handlers

import (
	"net/http"

	"github.com/recshelf/recshelf-api/internal/api/httpx"
	"github.com/recshelf/recshelf-api/internal/models"
)

func Root(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Categories returns the advisory category list offered by admin forms.
func Categories(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, models.SuggestedCategories)
}
