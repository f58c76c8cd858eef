package router

import (
	"net/http"

	admin "github.com/recshelf/recshelf-api/internal/api/handlers/admin"
	"github.com/recshelf/recshelf-api/internal/api/handlers/books"
	"github.com/recshelf/recshelf-api/internal/api/handlers/recommendations"
	"github.com/recshelf/recshelf-api/internal/api/handlers/recommenders"
	"github.com/recshelf/recshelf-api/internal/storage/s3"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/cache"
)

// MountAdmin wires all /api/admin/* endpoints. Access control is left to the
// deployment edge; nothing here assumes an authenticated caller.
func MountAdmin(mux *http.ServeMux, st store.Store, c *cache.Cache, sc *s3.Client) {
	// Combined create plus book patch/delete with cascade
	mux.Handle("POST /api/admin/books", books.AdminCreate(st, c))
	mux.Handle("PUT /api/admin/books/{id}", books.AdminPatch(st, c))
	mux.Handle("DELETE /api/admin/books/{id}", books.AdminDelete(st, c))

	// Recommender patch/delete with cascade
	mux.Handle("PUT /api/admin/recommenders/{id}", recommenders.AdminPatch(st, c))
	mux.Handle("DELETE /api/admin/recommenders/{id}", recommenders.AdminDelete(st, c))

	// Raw recommendation links
	mux.Handle("POST /api/admin/recommendations", recommendations.AdminCreate(st, c))
	mux.Handle("PUT /api/admin/recommendations/{id}", recommendations.AdminPatch(st, c))

	// Bulk import and image upload
	mux.Handle("POST /api/admin/import-csv", admin.ImportCSV(st, c))
	mux.Handle("POST /api/admin/upload", admin.Upload(st, sc, c))
}
