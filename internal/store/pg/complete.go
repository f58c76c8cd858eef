package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/dbx"
)

// completeQuery LEFT JOINs so a dangling reference surfaces as NULL ends
// instead of the row silently vanishing from an inner join.
const completeQuery = `
	SELECT r.id, r.book_id, r.recommender_id, COALESCE(r.comment,''), COALESCE(r.recommendation_date,''),
	       COALESCE(r.recommendation_medium,''), COALESCE(r.source,''), COALESCE(r.source_url,''), COALESCE(r.reason,''),
	       b.id, b.title, b.author, COALESCE(b.category,''), COALESCE(b.image_url,''),
	       COALESCE(b.publish_year,''), COALESCE(b.description,''),
	       p.id, p.name, COALESCE(p.organization,''), COALESCE(p.industry,''), COALESCE(p.image_url,'')
	FROM recommendations r
	LEFT JOIN books b ON b.id = r.book_id
	LEFT JOIN recommenders p ON p.id = r.recommender_id
	WHERE %s = $1
	ORDER BY r.id`

func (s *Store) GetCompleteRecommendationsByBookID(ctx context.Context, bookID int) ([]models.CompleteRecommendation, error) {
	all, err := s.queryComplete(ctx, fmt.Sprintf(completeQuery, "r.book_id"), bookID)
	if err != nil {
		return nil, err
	}
	// At most one entry per recommender; the earliest recommendation wins.
	seen := make(map[int]struct{})
	var out []models.CompleteRecommendation
	for _, cr := range all {
		if _, ok := seen[cr.RecommenderID]; ok {
			continue
		}
		seen[cr.RecommenderID] = struct{}{}
		out = append(out, cr)
	}
	return out, nil
}

func (s *Store) GetCompleteRecommendationsByRecommenderID(ctx context.Context, recommenderID int) ([]models.CompleteRecommendation, error) {
	all, err := s.queryComplete(ctx, fmt.Sprintf(completeQuery, "r.recommender_id"), recommenderID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{})
	var out []models.CompleteRecommendation
	for _, cr := range all {
		if _, ok := seen[cr.BookID]; ok {
			continue
		}
		seen[cr.BookID] = struct{}{}
		out = append(out, cr)
	}
	return out, nil
}

func (s *Store) queryComplete(ctx context.Context, query string, arg any) ([]models.CompleteRecommendation, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CompleteRecommendation
	for rows.Next() {
		var cr models.CompleteRecommendation
		var bID, pID sql.NullInt64
		var bTitle, bAuthor, pName sql.NullString
		if err := rows.Scan(
			&cr.ID, &cr.BookID, &cr.RecommenderID, &cr.Comment, &cr.RecommendationDate,
			&cr.RecommendationMedium, &cr.Source, &cr.SourceURL, &cr.Reason,
			&bID, &bTitle, &bAuthor, &cr.Book.Category, &cr.Book.ImageURL,
			&cr.Book.PublishYear, &cr.Book.Description,
			&pID, &pName, &cr.Recommender.Organization, &cr.Recommender.Industry, &cr.Recommender.ImageURL,
		); err != nil {
			return nil, err
		}
		if !bID.Valid || !pID.Valid {
			return nil, fmt.Errorf("recommendation %d references book %d / recommender %d: %w",
				cr.ID, cr.BookID, cr.RecommenderID, store.ErrIntegrity)
		}
		cr.Book.ID = int(bID.Int64)
		cr.Book.Title = bTitle.String
		cr.Book.Author = bAuthor.String
		cr.Recommender.ID = int(pID.Int64)
		cr.Recommender.Name = pName.String
		out = append(out, cr)
	}
	return out, rows.Err()
}

// CreateCompleteRecommendation runs the whole find-or-create-then-link
// sequence inside one transaction. The inserts use INSERT ... WHERE NOT
// EXISTS so two racing transactions cannot both create the same title/name.
func (s *Store) CreateCompleteRecommendation(ctx context.Context, in models.CombinedInsert) (models.CompleteRecommendation, error) {
	var out models.CompleteRecommendation
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		book, err := ensureBook(ctx, tx, in)
		if err != nil {
			return err
		}
		rec, err := ensureRecommender(ctx, tx, in)
		if err != nil {
			return err
		}
		link, err := insertRecommendation(ctx, tx, models.InsertRecommendation{
			BookID:               book.ID,
			RecommenderID:        rec.ID,
			Comment:              in.Comment,
			RecommendationDate:   in.RecommendationDate,
			RecommendationMedium: in.RecommendationMedium,
			Source:               in.Source,
			SourceURL:            in.SourceURL,
			Reason:               in.Reason,
		})
		if err != nil {
			return err
		}
		out = models.CompleteRecommendation{Recommendation: link, Book: book, Recommender: rec}
		return nil
	})
	if err != nil {
		return models.CompleteRecommendation{}, err
	}
	return out, nil
}

// ensureBook finds the book by case-insensitive title or inserts it if still
// absent. On a hit it opportunistically fills in image/year/description when
// the stored record has no image yet and the input brings one.
func ensureBook(ctx context.Context, tx *sql.Tx, in models.CombinedInsert) (models.Book, error) {
	book, err := getBookByTitle(ctx, tx, in.Title)
	if err == nil {
		if in.ImageURL != "" && book.ImageURL == "" {
			book.ImageURL = in.ImageURL
			if in.PublishYear != "" {
				book.PublishYear = in.PublishYear
			}
			if in.Description != "" {
				book.Description = in.Description
			}
			if _, err := tx.ExecContext(ctx, `
				UPDATE books
				SET image_url = $1, publish_year = NULLIF($2,''), description = NULLIF($3,'')
				WHERE id = $4
			`, book.ImageURL, book.PublishYear, book.Description, book.ID); err != nil {
				return models.Book{}, err
			}
		}
		return book, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, err
	}

	book = models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		PublishYear: in.PublishYear,
		Description: in.Description,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO books (title, author, category, image_url, publish_year, description)
		SELECT $1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,'')
		WHERE NOT EXISTS (SELECT 1 FROM books WHERE lower(title) = lower($1))
		RETURNING id
	`, in.Title, in.Author, in.Category, in.ImageURL, in.PublishYear, in.Description).Scan(&book.ID)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race to a concurrent insert; the row exists now.
		return getBookByTitle(ctx, tx, in.Title)
	}
	if err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func ensureRecommender(ctx context.Context, tx *sql.Tx, in models.CombinedInsert) (models.Recommender, error) {
	rec, err := getRecommenderByName(ctx, tx, in.RecommenderName)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Recommender{}, err
	}

	rec = models.Recommender{
		Name:         in.RecommenderName,
		Organization: in.RecommenderOrg,
		Industry:     in.Industry,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO recommenders (name, organization, industry)
		SELECT $1, NULLIF($2,''), NULLIF($3,'')
		WHERE NOT EXISTS (SELECT 1 FROM recommenders WHERE lower(name) = lower($1))
		RETURNING id
	`, in.RecommenderName, in.RecommenderOrg, in.Industry).Scan(&rec.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return getRecommenderByName(ctx, tx, in.RecommenderName)
	}
	if err != nil {
		return models.Recommender{}, err
	}
	return rec, nil
}
