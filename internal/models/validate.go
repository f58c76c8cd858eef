package models

import (
	"strings"
)

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError accumulates field-level failures for one payload. It is an
// expected client error, never a server fault.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.add(field, field+" is required")
	}
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateBookInsert checks the required book fields. Pure, no I/O.
func ValidateBookInsert(in InsertBook) *ValidationError {
	var e ValidationError
	e.require("title", in.Title)
	e.require("author", in.Author)
	return e.orNil()
}

func ValidateRecommenderInsert(in InsertRecommender) *ValidationError {
	var e ValidationError
	e.require("name", in.Name)
	return e.orNil()
}

func ValidateRecommendationInsert(in InsertRecommendation) *ValidationError {
	var e ValidationError
	if in.BookID <= 0 {
		e.add("bookId", "bookId is required")
	}
	if in.RecommenderID <= 0 {
		e.add("recommenderId", "recommenderId is required")
	}
	return e.orNil()
}

// ValidateCombinedInsert checks the union shape used by the one-shot create:
// book required fields plus the recommender name. Commentary is optional.
func ValidateCombinedInsert(in CombinedInsert) *ValidationError {
	var e ValidationError
	e.require("title", in.Title)
	e.require("author", in.Author)
	e.require("recommenderName", in.RecommenderName)
	return e.orNil()
}
