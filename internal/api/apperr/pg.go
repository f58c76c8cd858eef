package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgconn"
)

// Known constraint names from the schema, mapped to the JSON field a client
// would recognize.
var constraintField = map[string]string{
	"recommendations_book_id_fkey":        "bookId",
	"recommendations_recommender_id_fkey": "recommenderId",
	"books_title_key":                     "title",
	"recommenders_name_key":               "name",
}

func fieldFromConstraint(c string) string {
	if f, ok := constraintField[c]; ok {
		return f
	}
	return ""
}

func fieldFromDetail(detail string) string {
	for _, k := range []string{"book_id", "recommender_id", "title", "name", "id"} {
		if strings.Contains(detail, k) {
			return k
		}
	}
	return ""
}

// FromPG maps a pgconn.PgError to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{Title: "Database error", Status: http.StatusInternalServerError}

	field := fieldFromConstraint(pg.ConstraintName)
	if field == "" && pg.Detail != "" {
		field = fieldFromDetail(pg.Detail)
	}
	if field == "" {
		field = "resource"
	}

	switch pg.Code {
	case "23505": // unique_violation
		p.Status = http.StatusConflict
		p.Title = "Conflict"
		p.FieldErrors = []FieldError{{Field: field, Message: "value already exists"}}
	case "23503": // foreign_key_violation
		p.Status = http.StatusConflict
		p.Title = "Conflict"
		p.FieldErrors = []FieldError{{Field: field, Message: "referenced record does not exist"}}
	case "23502": // not_null_violation
		p.Status = http.StatusBadRequest
		p.Title = "Bad Request"
		if pg.ColumnName != "" {
			field = pg.ColumnName
		}
		p.FieldErrors = []FieldError{{Field: field, Message: "required field is missing"}}
	case "22001": // string_data_right_truncation
		p.Status = http.StatusBadRequest
		p.Title = "Bad Request"
		p.FieldErrors = []FieldError{{Field: field, Message: "value is too long"}}
	case "40001", "40P01": // serialization_failure, deadlock_detected
		p.Status = http.StatusConflict
		p.Title = "Conflict"
		p.Detail = "transaction conflict, please retry"
		p.Retryable = true
	}
	return p, true
}

// HandleDBError maps err to a Problem and writes it. Returns true if handled.
func HandleDBError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	if p, ok := FromPG(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
