package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/dbx"
)

const recommendationCols = `id, book_id, recommender_id, COALESCE(comment,''), COALESCE(recommendation_date,''),
	COALESCE(recommendation_medium,''), COALESCE(source,''), COALESCE(source_url,''), COALESCE(reason,'')`

func scanRecommendation(rs rowScanner) (models.Recommendation, error) {
	var r models.Recommendation
	err := rs.Scan(&r.ID, &r.BookID, &r.RecommenderID, &r.Comment, &r.RecommendationDate,
		&r.RecommendationMedium, &r.Source, &r.SourceURL, &r.Reason)
	return r, err
}

func (s *Store) GetAllRecommendations(ctx context.Context) ([]models.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recommendationCols+` FROM recommendations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Recommendation
	for rows.Next() {
		r, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetRecommendationByID(ctx context.Context, id int) (models.Recommendation, error) {
	r, err := scanRecommendation(s.db.QueryRowContext(ctx,
		`SELECT `+recommendationCols+` FROM recommendations WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recommendation{}, store.ErrNotFound
	}
	return r, err
}

func (s *Store) CreateRecommendation(ctx context.Context, in models.InsertRecommendation) (models.Recommendation, error) {
	return insertRecommendation(ctx, s.db, in)
}

func (s *Store) UpdateRecommendation(ctx context.Context, id int, patch models.RecommendationPatch) (models.Recommendation, error) {
	r, err := s.GetRecommendationByID(ctx, id)
	if err != nil {
		return models.Recommendation{}, err
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
	_, err = s.db.ExecContext(ctx, `
		UPDATE recommendations
		SET book_id = $1, recommender_id = $2, comment = NULLIF($3,''), recommendation_date = NULLIF($4,''),
		    recommendation_medium = NULLIF($5,''), source = NULLIF($6,''), source_url = NULLIF($7,''), reason = NULLIF($8,'')
		WHERE id = $9
	`, r.BookID, r.RecommenderID, r.Comment, r.RecommendationDate, r.RecommendationMedium,
		r.Source, r.SourceURL, r.Reason, id)
	if err != nil {
		return models.Recommendation{}, err
	}
	return r, nil
}

func insertRecommendation(ctx context.Context, g dbx.Getter, in models.InsertRecommendation) (models.Recommendation, error) {
	r := models.Recommendation{
		BookID:               in.BookID,
		RecommenderID:        in.RecommenderID,
		Comment:              in.Comment,
		RecommendationDate:   in.RecommendationDate,
		RecommendationMedium: in.RecommendationMedium,
		Source:               in.Source,
		SourceURL:            in.SourceURL,
		Reason:               in.Reason,
	}
	err := g.QueryRowContext(ctx, `
		INSERT INTO recommendations
			(book_id, recommender_id, comment, recommendation_date, recommendation_medium, source, source_url, reason)
		VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), NULLIF($8,''))
		RETURNING id
	`, in.BookID, in.RecommenderID, in.Comment, in.RecommendationDate, in.RecommendationMedium,
		in.Source, in.SourceURL, in.Reason).Scan(&r.ID)
	if err != nil {
		return models.Recommendation{}, err
	}
	return r, nil
}
