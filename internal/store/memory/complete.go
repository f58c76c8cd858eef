package memory

import (
	"context"
	"fmt"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
)

func (s *Store) GetBooksByRecommenderID(_ context.Context, recommenderID int) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]struct{})
	var out []models.Book
	for _, rec := range sortedRecommendations(s.recommendations) {
		if rec.RecommenderID != recommenderID {
			continue
		}
		if _, ok := seen[rec.BookID]; ok {
			continue
		}
		seen[rec.BookID] = struct{}{}
		if b, ok := s.books[rec.BookID]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) GetRecommendersByBookID(_ context.Context, bookID int) ([]models.Recommender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]struct{})
	var out []models.Recommender
	for _, rec := range sortedRecommendations(s.recommendations) {
		if rec.BookID != bookID {
			continue
		}
		if _, ok := seen[rec.RecommenderID]; ok {
			continue
		}
		seen[rec.RecommenderID] = struct{}{}
		if r, ok := s.recommenders[rec.RecommenderID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetCompleteRecommendationsByBookID resolves every recommendation for the
// book, keeping only the first per distinct recommender. A dangling reference
// is a hard error, not something to skip silently.
func (s *Store) GetCompleteRecommendationsByBookID(_ context.Context, bookID int) ([]models.CompleteRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]struct{})
	var out []models.CompleteRecommendation
	for _, rec := range sortedRecommendations(s.recommendations) {
		if rec.BookID != bookID {
			continue
		}
		if _, ok := seen[rec.RecommenderID]; ok {
			continue
		}
		cr, err := s.resolveLocked(rec)
		if err != nil {
			return nil, err
		}
		seen[rec.RecommenderID] = struct{}{}
		out = append(out, cr)
	}
	return out, nil
}

// GetCompleteRecommendationsByRecommenderID is the mirror image, deduplicated
// by distinct book.
func (s *Store) GetCompleteRecommendationsByRecommenderID(_ context.Context, recommenderID int) ([]models.CompleteRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]struct{})
	var out []models.CompleteRecommendation
	for _, rec := range sortedRecommendations(s.recommendations) {
		if rec.RecommenderID != recommenderID {
			continue
		}
		if _, ok := seen[rec.BookID]; ok {
			continue
		}
		cr, err := s.resolveLocked(rec)
		if err != nil {
			return nil, err
		}
		seen[rec.BookID] = struct{}{}
		out = append(out, cr)
	}
	return out, nil
}

// CreateCompleteRecommendation performs the find-or-create orchestration
// under the store lock, so two concurrent calls can never both miss the
// lookup and insert duplicate entities.
func (s *Store) CreateCompleteRecommendation(_ context.Context, in models.CombinedInsert) (models.CompleteRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.bookByTitleLocked(in.Title)
	if !ok {
		book = s.createBookLocked(models.InsertBook{
			Title:       in.Title,
			Author:      in.Author,
			Category:    in.Category,
			ImageURL:    in.ImageURL,
			PublishYear: in.PublishYear,
			Description: in.Description,
		})
	} else if in.ImageURL != "" && book.ImageURL == "" {
		// Enrich an already-known book when the new submission brings an
		// image the stored record lacks.
		book.ImageURL = in.ImageURL
		if in.PublishYear != "" {
			book.PublishYear = in.PublishYear
		}
		if in.Description != "" {
			book.Description = in.Description
		}
		s.books[book.ID] = book
	}

	rec, ok := s.recommenderByNameLocked(in.RecommenderName)
	if !ok {
		rec = s.createRecommenderLocked(models.InsertRecommender{
			Name:         in.RecommenderName,
			Organization: in.RecommenderOrg,
			Industry:     in.Industry,
		})
	}

	link := s.createRecommendationLocked(models.InsertRecommendation{
		BookID:               book.ID,
		RecommenderID:        rec.ID,
		Comment:              in.Comment,
		RecommendationDate:   in.RecommendationDate,
		RecommendationMedium: in.RecommendationMedium,
		Source:               in.Source,
		SourceURL:            in.SourceURL,
		Reason:               in.Reason,
	})

	return models.CompleteRecommendation{Recommendation: link, Book: book, Recommender: rec}, nil
}

func (s *Store) resolveLocked(rec models.Recommendation) (models.CompleteRecommendation, error) {
	b, okB := s.books[rec.BookID]
	r, okR := s.recommenders[rec.RecommenderID]
	if !okB || !okR {
		return models.CompleteRecommendation{}, fmt.Errorf("recommendation %d references book %d / recommender %d: %w",
			rec.ID, rec.BookID, rec.RecommenderID, store.ErrIntegrity)
	}
	return models.CompleteRecommendation{Recommendation: rec, Book: b, Recommender: r}, nil
}
