package memory

import (
	"context"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
)

func (s *Store) GetAllRecommendations(_ context.Context) ([]models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedRecommendations(s.recommendations), nil
}

func (s *Store) GetRecommendationByID(_ context.Context, id int) (models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recommendations[id]
	if !ok {
		return models.Recommendation{}, store.ErrNotFound
	}
	return r, nil
}

func (s *Store) CreateRecommendation(_ context.Context, in models.InsertRecommendation) (models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createRecommendationLocked(in), nil
}

func (s *Store) UpdateRecommendation(_ context.Context, id int, patch models.RecommendationPatch) (models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recommendations[id]
	if !ok {
		return models.Recommendation{}, store.ErrNotFound
	}
	if patch.BookID != nil {
		r.BookID = *patch.BookID
	}
	if patch.RecommenderID != nil {
		r.RecommenderID = *patch.RecommenderID
	}
	if patch.Comment != nil {
		r.Comment = *patch.Comment
	}
	if patch.RecommendationDate != nil {
		r.RecommendationDate = *patch.RecommendationDate
	}
	if patch.RecommendationMedium != nil {
		r.RecommendationMedium = *patch.RecommendationMedium
	}
	if patch.Source != nil {
		r.Source = *patch.Source
	}
	if patch.SourceURL != nil {
		r.SourceURL = *patch.SourceURL
	}
	if patch.Reason != nil {
		r.Reason = *patch.Reason
	}
	s.recommendations[id] = r
	return r, nil
}

func (s *Store) createRecommendationLocked(in models.InsertRecommendation) models.Recommendation {
	s.recommendationSeq++
	r := models.Recommendation{
		ID:                   s.recommendationSeq,
		BookID:               in.BookID,
		RecommenderID:        in.RecommenderID,
		Comment:              in.Comment,
		RecommendationDate:   in.RecommendationDate,
		RecommendationMedium: in.RecommendationMedium,
		Source:               in.Source,
		SourceURL:            in.SourceURL,
		Reason:               in.Reason,
	}
	s.recommendations[r.ID] = r
	return r
}
