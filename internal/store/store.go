// Package store defines the storage engine contract shared by the in-memory
// and Postgres implementations. Handlers program against Store only; which
// implementation backs it is decided once at startup.
package store

import (
	"context"
	"errors"

	"github.com/recshelf/recshelf-api/internal/models"
)

var (
	// ErrNotFound signals that an id did not resolve. Expected and
	// recoverable; the API boundary turns it into a 404.
	ErrNotFound = errors.New("not found")

	// ErrIntegrity signals a recommendation pointing at a missing book or
	// recommender. Should be impossible under cascade-delete discipline, so
	// callers log it loudly and answer with an opaque server error.
	ErrIntegrity = errors.New("referential integrity violation")
)

type Store interface {
	// Books
	GetAllBooks(ctx context.Context) ([]models.Book, error)
	GetBookByID(ctx context.Context, id int) (models.Book, error)
	GetBookByTitle(ctx context.Context, title string) (models.Book, error)
	CreateBook(ctx context.Context, in models.InsertBook) (models.Book, error)
	UpdateBook(ctx context.Context, id int, patch models.BookPatch) (models.Book, error)
	DeleteBook(ctx context.Context, id int) (bool, error)
	SearchBooks(ctx context.Context, query string) ([]models.Book, error)

	// Recommenders
	GetAllRecommenders(ctx context.Context) ([]models.Recommender, error)
	GetRecommenderByID(ctx context.Context, id int) (models.Recommender, error)
	GetRecommenderByName(ctx context.Context, name string) (models.Recommender, error)
	CreateRecommender(ctx context.Context, in models.InsertRecommender) (models.Recommender, error)
	UpdateRecommender(ctx context.Context, id int, patch models.RecommenderPatch) (models.Recommender, error)
	DeleteRecommender(ctx context.Context, id int) (bool, error)
	SearchRecommenders(ctx context.Context, query string) ([]models.Recommender, error)

	// Recommendations
	GetAllRecommendations(ctx context.Context) ([]models.Recommendation, error)
	GetRecommendationByID(ctx context.Context, id int) (models.Recommendation, error)
	CreateRecommendation(ctx context.Context, in models.InsertRecommendation) (models.Recommendation, error)
	UpdateRecommendation(ctx context.Context, id int, patch models.RecommendationPatch) (models.Recommendation, error)

	// Joins
	GetBooksByRecommenderID(ctx context.Context, recommenderID int) ([]models.Book, error)
	GetRecommendersByBookID(ctx context.Context, bookID int) ([]models.Recommender, error)
	GetCompleteRecommendationsByBookID(ctx context.Context, bookID int) ([]models.CompleteRecommendation, error)
	GetCompleteRecommendationsByRecommenderID(ctx context.Context, recommenderID int) ([]models.CompleteRecommendation, error)

	// CreateCompleteRecommendation finds-or-creates the book by title and the
	// recommender by name (both case-insensitive), then always inserts a new
	// recommendation linking them. Atomic: all three effects or none.
	CreateCompleteRecommendation(ctx context.Context, in models.CombinedInsert) (models.CompleteRecommendation, error)
}
