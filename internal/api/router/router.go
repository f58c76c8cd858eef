package router

import (
	"net/http"

	"github.com/recshelf/recshelf-api/internal/api/handlers"
	"github.com/recshelf/recshelf-api/internal/api/handlers/books"
	"github.com/recshelf/recshelf-api/internal/api/handlers/recommendations"
	"github.com/recshelf/recshelf-api/internal/api/handlers/recommenders"
	"github.com/recshelf/recshelf-api/internal/storage/s3"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/cache"
)

// Router builds the public read surface plus the admin mount. sc may be nil
// when no object storage is configured; uploads then answer 503.
func Router(st store.Store, c *cache.Cache, sc *s3.Client) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", handlers.Root)
	mux.HandleFunc("GET /api/categories", handlers.Categories)

	// Books (method-specific + 1.22 patterns). Literal routes precede {id}
	// so /api/books/search never parses as an id.
	mux.Handle("GET /api/books", books.List(st, c))
	mux.Handle("GET /api/books/search", books.Search(st))
	mux.Handle("GET /api/books/{id}", books.Get(st))
	mux.Handle("GET /api/books/{id}/recommenders", books.Recommenders(st))

	// Recommenders
	mux.Handle("GET /api/recommenders", recommenders.List(st, c))
	mux.Handle("GET /api/recommenders/search", recommenders.Search(st))
	mux.Handle("GET /api/recommenders/{id}", recommenders.Get(st))
	mux.Handle("GET /api/recommenders/{id}/books", recommenders.Books(st))

	// Raw link rows, undeduplicated
	mux.Handle("GET /api/recommendations", recommendations.List(st))

	MountAdmin(mux, st, c, sc)

	return mux
}
