// Package memory implements store.Store on plain maps. Meant for development
// and tests; a single mutex serializes every operation so multi-step
// mutations (find-or-create-then-link) can never interleave.
package memory

import (
	"sort"
	"sync"

	"github.com/recshelf/recshelf-api/internal/models"
)

type Store struct {
	mu sync.Mutex

	books           map[int]models.Book
	recommenders    map[int]models.Recommender
	recommendations map[int]models.Recommendation

	// Monotonic id counters. Freed ids are never reused.
	bookSeq, recommenderSeq, recommendationSeq int
}

func New() *Store {
	return &Store{
		books:           make(map[int]models.Book),
		recommenders:    make(map[int]models.Recommender),
		recommendations: make(map[int]models.Recommendation),
	}
}

func sortedBooks(m map[int]models.Book) []models.Book {
	out := make([]models.Book, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedRecommenders(m map[int]models.Recommender) []models.Recommender {
	out := make([]models.Recommender, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedRecommendations(m map[int]models.Recommendation) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
