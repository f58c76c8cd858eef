package memory

import (
	"context"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/shared"
)

func (s *Store) GetAllRecommenders(_ context.Context) ([]models.Recommender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedRecommenders(s.recommenders), nil
}

func (s *Store) GetRecommenderByID(_ context.Context, id int) (models.Recommender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recommenders[id]
	if !ok {
		return models.Recommender{}, store.ErrNotFound
	}
	return r, nil
}

func (s *Store) GetRecommenderByName(_ context.Context, name string) (models.Recommender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recommenderByNameLocked(name)
	if !ok {
		return models.Recommender{}, store.ErrNotFound
	}
	return r, nil
}

func (s *Store) CreateRecommender(_ context.Context, in models.InsertRecommender) (models.Recommender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createRecommenderLocked(in), nil
}

func (s *Store) UpdateRecommender(_ context.Context, id int, patch models.RecommenderPatch) (models.Recommender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recommenders[id]
	if !ok {
		return models.Recommender{}, store.ErrNotFound
	}
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Organization != nil {
		r.Organization = *patch.Organization
	}
	if patch.Industry != nil {
		r.Industry = *patch.Industry
	}
	if patch.ImageURL != nil {
		r.ImageURL = *patch.ImageURL
	}
	s.recommenders[id] = r
	return r, nil
}

// DeleteRecommender cascades over recommendations first, mirroring DeleteBook.
func (s *Store) DeleteRecommender(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recommenders[id]; !ok {
		return false, nil
	}
	for rid, rec := range s.recommendations {
		if rec.RecommenderID == id {
			delete(s.recommendations, rid)
		}
	}
	delete(s.recommenders, id)
	return true, nil
}

func (s *Store) SearchRecommenders(_ context.Context, query string) ([]models.Recommender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Recommender
	for _, r := range sortedRecommenders(s.recommenders) {
		if shared.ContainsFold(r.Name, query) || (r.Organization != "" && shared.ContainsFold(r.Organization, query)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) recommenderByNameLocked(name string) (models.Recommender, bool) {
	for _, r := range sortedRecommenders(s.recommenders) {
		if shared.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return models.Recommender{}, false
}

func (s *Store) createRecommenderLocked(in models.InsertRecommender) models.Recommender {
	s.recommenderSeq++
	r := models.Recommender{
		ID:           s.recommenderSeq,
		Name:         in.Name,
		Organization: in.Organization,
		Industry:     in.Industry,
		ImageURL:     in.ImageURL,
	}
	s.recommenders[r.ID] = r
	return r
}
