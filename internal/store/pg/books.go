package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/dbx"
)

const bookCols = `id, title, author, COALESCE(category,''), COALESCE(image_url,''), COALESCE(publish_year,''), COALESCE(description,'')`

func scanBook(rs rowScanner) (models.Book, error) {
	var b models.Book
	err := rs.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.ImageURL, &b.PublishYear, &b.Description)
	return b, err
}

func (s *Store) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	return queryBooks(ctx, s.db, `SELECT `+bookCols+` FROM books ORDER BY id`)
}

func (s *Store) GetBookByID(ctx context.Context, id int) (models.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, `SELECT `+bookCols+` FROM books WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, store.ErrNotFound
	}
	return b, err
}

func (s *Store) GetBookByTitle(ctx context.Context, title string) (models.Book, error) {
	b, err := getBookByTitle(ctx, s.db, title)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, store.ErrNotFound
	}
	return b, err
}

func (s *Store) CreateBook(ctx context.Context, in models.InsertBook) (models.Book, error) {
	b := models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		PublishYear: in.PublishYear,
		Description: in.Description,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO books (title, author, category, image_url, publish_year, description)
		VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,''))
		RETURNING id
	`, in.Title, in.Author, in.Category, in.ImageURL, in.PublishYear, in.Description).Scan(&b.ID)
	if err != nil {
		return models.Book{}, err
	}
	return b, nil
}

// UpdateBook fetches the current row, applies the non-nil patch fields and
// writes all columns back, so omitted fields keep their prior values.
func (s *Store) UpdateBook(ctx context.Context, id int, patch models.BookPatch) (models.Book, error) {
	b, err := s.GetBookByID(ctx, id)
	if err != nil {
		return models.Book{}, err
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
	_, err = s.db.ExecContext(ctx, `
		UPDATE books
		SET title = $1, author = $2, category = NULLIF($3,''), image_url = NULLIF($4,''),
		    publish_year = NULLIF($5,''), description = NULLIF($6,'')
		WHERE id = $7
	`, b.Title, b.Author, b.Category, b.ImageURL, b.PublishYear, b.Description, id)
	if err != nil {
		return models.Book{}, err
	}
	return b, nil
}

// DeleteBook removes dependent recommendations first, then the book, inside
// one transaction. Returns false when the id does not exist.
func (s *Store) DeleteBook(ctx context.Context, id int) (bool, error) {
	found := false
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations WHERE book_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
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

func (s *Store) SearchBooks(ctx context.Context, query string) ([]models.Book, error) {
	return queryBooks(ctx, s.db, `
		SELECT `+bookCols+` FROM books
		WHERE title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'
		ORDER BY id
	`, query)
}

func (s *Store) GetBooksByRecommenderID(ctx context.Context, recommenderID int) ([]models.Book, error) {
	return queryBooks(ctx, s.db, `
		SELECT DISTINCT b.id, b.title, b.author, COALESCE(b.category,''), COALESCE(b.image_url,''),
		       COALESCE(b.publish_year,''), COALESCE(b.description,'')
		FROM books b
		JOIN recommendations r ON r.book_id = b.id
		WHERE r.recommender_id = $1
		ORDER BY b.id
	`, recommenderID)
}

func queryBooks(ctx context.Context, q dbx.Queryer, query string, args ...any) ([]models.Book, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func getBookByTitle(ctx context.Context, g dbx.Getter, title string) (models.Book, error) {
	return scanBook(g.QueryRowContext(ctx, `
		SELECT `+bookCols+` FROM books WHERE lower(title) = lower($1) ORDER BY id LIMIT 1
	`, title))
}
