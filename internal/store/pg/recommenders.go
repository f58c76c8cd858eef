package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/dbx"
)

const recommenderCols = `id, name, COALESCE(organization,''), COALESCE(industry,''), COALESCE(image_url,'')`

func scanRecommender(rs rowScanner) (models.Recommender, error) {
	var r models.Recommender
	err := rs.Scan(&r.ID, &r.Name, &r.Organization, &r.Industry, &r.ImageURL)
	return r, err
}

func (s *Store) GetAllRecommenders(ctx context.Context) ([]models.Recommender, error) {
	return queryRecommenders(ctx, s.db, `SELECT `+recommenderCols+` FROM recommenders ORDER BY id`)
}

func (s *Store) GetRecommenderByID(ctx context.Context, id int) (models.Recommender, error) {
	r, err := scanRecommender(s.db.QueryRowContext(ctx, `SELECT `+recommenderCols+` FROM recommenders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recommender{}, store.ErrNotFound
	}
	return r, err
}

func (s *Store) GetRecommenderByName(ctx context.Context, name string) (models.Recommender, error) {
	r, err := getRecommenderByName(ctx, s.db, name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recommender{}, store.ErrNotFound
	}
	return r, err
}

func (s *Store) CreateRecommender(ctx context.Context, in models.InsertRecommender) (models.Recommender, error) {
	r := models.Recommender{
		Name:         in.Name,
		Organization: in.Organization,
		Industry:     in.Industry,
		ImageURL:     in.ImageURL,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO recommenders (name, organization, industry, image_url)
		VALUES ($1, NULLIF($2,''), NULLIF($3,''), NULLIF($4,''))
		RETURNING id
	`, in.Name, in.Organization, in.Industry, in.ImageURL).Scan(&r.ID)
	if err != nil {
		return models.Recommender{}, err
	}
	return r, nil
}

func (s *Store) UpdateRecommender(ctx context.Context, id int, patch models.RecommenderPatch) (models.Recommender, error) {
	r, err := s.GetRecommenderByID(ctx, id)
	if err != nil {
		return models.Recommender{}, err
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
	_, err = s.db.ExecContext(ctx, `
		UPDATE recommenders
		SET name = $1, organization = NULLIF($2,''), industry = NULLIF($3,''), image_url = NULLIF($4,'')
		WHERE id = $5
	`, r.Name, r.Organization, r.Industry, r.ImageURL, id)
	if err != nil {
		return models.Recommender{}, err
	}
	return r, nil
}

func (s *Store) DeleteRecommender(ctx context.Context, id int) (bool, error) {
	found := false
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations WHERE recommender_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM recommenders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		found = n > 0
		return nil
	})
	return found, err
}

func (s *Store) SearchRecommenders(ctx context.Context, query string) ([]models.Recommender, error) {
	return queryRecommenders(ctx, s.db, `
		SELECT `+recommenderCols+` FROM recommenders
		WHERE name ILIKE '%' || $1 || '%' OR organization ILIKE '%' || $1 || '%'
		ORDER BY id
	`, query)
}

func (s *Store) GetRecommendersByBookID(ctx context.Context, bookID int) ([]models.Recommender, error) {
	return queryRecommenders(ctx, s.db, `
		SELECT DISTINCT p.id, p.name, COALESCE(p.organization,''), COALESCE(p.industry,''), COALESCE(p.image_url,'')
		FROM recommenders p
		JOIN recommendations r ON r.recommender_id = p.id
		WHERE r.book_id = $1
		ORDER BY p.id
	`, bookID)
}

func queryRecommenders(ctx context.Context, q dbx.Queryer, query string, args ...any) ([]models.Recommender, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Recommender
	for rows.Next() {
		r, err := scanRecommender(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func getRecommenderByName(ctx context.Context, g dbx.Getter, name string) (models.Recommender, error) {
	return scanRecommender(g.QueryRowContext(ctx, `
		SELECT `+recommenderCols+` FROM recommenders WHERE lower(name) = lower($1) ORDER BY id LIMIT 1
	`, name))
}
