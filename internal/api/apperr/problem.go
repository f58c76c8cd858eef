package apperr

import (
	"encoding/json"
	"net/http"

	"github.com/recshelf/recshelf-api/internal/models"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Problem is an RFC7807-style error payload.
type Problem struct {
	Title       string       `json:"title"`
	Status      int          `json:"status"`
	Detail      string       `json:"detail,omitempty"`
	Instance    string       `json:"instance,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
	Retryable   bool         `json:"retryable,omitempty"`
}

func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	if r != nil {
		if p.Instance == "" {
			p.Instance = r.URL.Path
		}
		if p.RequestID == "" {
			if rid := r.Header.Get("X-Request-ID"); rid != "" {
				p.RequestID = rid
			}
		}
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// WriteValidation surfaces a models.ValidationError as a 400 with the
// per-field messages intact.
func WriteValidation(w http.ResponseWriter, r *http.Request, ve *models.ValidationError) {
	p := Problem{Status: http.StatusBadRequest, Title: "Invalid data"}
	for _, f := range ve.Fields {
		p.FieldErrors = append(p.FieldErrors, FieldError{Field: f.Field, Message: f.Message})
	}
	Write(w, r, p)
}
