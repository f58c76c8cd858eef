package models

import "testing"

func TestValidateCombinedInsert(t *testing.T) {
	if ve := ValidateCombinedInsert(CombinedInsert{
		Title: "Sapiens", Author: "Harari", RecommenderName: "Bill Gates",
	}); ve != nil {
		t.Errorf("valid input rejected: %v", ve)
	}

	ve := ValidateCombinedInsert(CombinedInsert{Title: "  "})
	if ve == nil {
		t.Fatal("blank input accepted")
	}
	if len(ve.Fields) != 3 {
		t.Errorf("want title/author/recommenderName errors, got %v", ve.Fields)
	}
}

func TestValidateRecommendationInsert(t *testing.T) {
	if ve := ValidateRecommendationInsert(InsertRecommendation{BookID: 1, RecommenderID: 2}); ve != nil {
		t.Errorf("valid input rejected: %v", ve)
	}
	ve := ValidateRecommendationInsert(InsertRecommendation{BookID: 0, RecommenderID: -1})
	if ve == nil || len(ve.Fields) != 2 {
		t.Errorf("want bookId and recommenderId errors, got %v", ve)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	ve := ValidateBookInsert(InsertBook{})
	if ve == nil {
		t.Fatal("empty book accepted")
	}
	if got := ve.Error(); got == "" {
		t.Error("Error() must describe the failures")
	}
}
