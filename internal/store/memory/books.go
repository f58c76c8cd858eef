package memory

import (
	"context"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/shared"
)

func (s *Store) GetAllBooks(_ context.Context) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedBooks(s.books), nil
}

func (s *Store) GetBookByID(_ context.Context, id int) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return models.Book{}, store.ErrNotFound
	}
	return b, nil
}

func (s *Store) GetBookByTitle(_ context.Context, title string) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookByTitleLocked(title)
	if !ok {
		return models.Book{}, store.ErrNotFound
	}
	return b, nil
}

func (s *Store) CreateBook(_ context.Context, in models.InsertBook) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createBookLocked(in), nil
}

func (s *Store) UpdateBook(_ context.Context, id int, patch models.BookPatch) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return models.Book{}, store.ErrNotFound
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.Category != nil {
		b.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		b.ImageURL = *patch.ImageURL
	}
	if patch.PublishYear != nil {
		b.PublishYear = *patch.PublishYear
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	s.books[id] = b
	return b, nil
}

// DeleteBook removes the book's recommendations first, then the book itself.
// Returns false when the id does not exist.
func (s *Store) DeleteBook(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return false, nil
	}
	for rid, rec := range s.recommendations {
		if rec.BookID == id {
			delete(s.recommendations, rid)
		}
	}
	delete(s.books, id)
	return true, nil
}

func (s *Store) SearchBooks(_ context.Context, query string) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Book
	for _, b := range sortedBooks(s.books) {
		if shared.ContainsFold(b.Title, query) || shared.ContainsFold(b.Author, query) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) bookByTitleLocked(title string) (models.Book, bool) {
	for _, b := range sortedBooks(s.books) {
		if shared.EqualFold(b.Title, title) {
			return b, true
		}
	}
	return models.Book{}, false
}

func (s *Store) createBookLocked(in models.InsertBook) models.Book {
	s.bookSeq++
	b := models.Book{
		ID:          s.bookSeq,
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		PublishYear: in.PublishYear,
		Description: in.Description,
	}
	s.books[b.ID] = b
	return b
}
