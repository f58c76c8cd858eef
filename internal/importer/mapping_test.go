package importer

import (
	"errors"
	"testing"
)

func TestParseRecommender(t *testing.T) {
	tests := []struct {
		in        string
		name, org string
	}{
		{"Elon Musk (Tesla/SpaceX)", "Elon Musk", "Tesla/SpaceX"},
		{"Bill Gates", "Bill Gates", ""},
		{"  Warren Buffett ( Berkshire Hathaway ) ", "Warren Buffett", "Berkshire Hathaway"},
		{"(Anonymous)", "(Anonymous)", ""}, // leading paren is part of the name
		{"", "", ""},
	}
	for _, tt := range tests {
		name, org := ParseRecommender(tt.in)
		if name != tt.name || org != tt.org {
			t.Errorf("ParseRecommender(%q) = %q, %q; want %q, %q", tt.in, name, org, tt.name, tt.org)
		}
	}
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		title, want string
	}{
		{"Business Adventures", "ビジネス"},
		{"SAPIENS: A Brief History", "社会科学"},
		{"The Hitchhiker's Guide to the Galaxy", "SF"},
		{"Structures: Or Why Things Don't Fall Down", "科学"},
		{"The Remains of the Day", "小説"},
		{"The Intelligent Investor", "投資"},
		{"Unknown Title", ""},
	}
	for _, tt := range tests {
		if got := InferCategory(tt.title); got != tt.want {
			t.Errorf("InferCategory(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSplitPeriod(t *testing.T) {
	tests := []struct {
		in, date, medium string
	}{
		{"2015 Twitter", "2015", "Twitter"},
		{"2018 Gates Notes blog", "2018", "Gates Notes blog"},
		{"2020", "2020", ""},
		{"", "", ""},
		{"  2019   TV interview ", "2019", "TV interview"},
	}
	for _, tt := range tests {
		date, medium := SplitPeriod(tt.in)
		if date != tt.date || medium != tt.medium {
			t.Errorf("SplitPeriod(%q) = %q, %q; want %q, %q", tt.in, date, medium, tt.date, tt.medium)
		}
	}
}

func TestMapRecords_MissingColumns(t *testing.T) {
	_, err := MapRecords([]map[string]string{
		{"Title": "Sapiens", "Author": "Harari"}, // no recommender column
	})
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("want ErrMissingColumns, got %v", err)
	}
}

func TestMapRecords_HeaderAliasesAndInference(t *testing.T) {
	rows, err := MapRecords([]map[string]string{
		{
			"Book Title":            " Business Adventures ",
			"Book Author":           "John Brooks",
			"Recommended By":        "Bill Gates (Microsoft)",
			"Recommendation Period": "2014 Blog",
		},
		{
			"Book Title":     "", // dropped: empty title
			"Book Author":    "Nobody",
			"Recommended By": "X",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Title != "Business Adventures" || row.Author != "John Brooks" {
		t.Errorf("bad mapping: %+v", row)
	}
	if row.RecommenderName != "Bill Gates" || row.RecommenderOrg != "Microsoft" {
		t.Errorf("recommender not parsed: %+v", row)
	}
	if row.RecommendationDate != "2014 Blog" {
		t.Errorf("period should stay combined until import: %q", row.RecommendationDate)
	}
	if row.Category != "ビジネス" {
		t.Errorf("category not inferred: %q", row.Category)
	}
}

func TestMapRecords_ExplicitCategoryWins(t *testing.T) {
	rows, err := MapRecords([]map[string]string{
		{
			"title":       "Business Adventures",
			"author":      "John Brooks",
			"recommender": "Bill Gates",
			"category":    "歴史",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Category != "歴史" {
		t.Errorf("explicit category overridden: %q", rows[0].Category)
	}
}

func TestMapRecords_Empty(t *testing.T) {
	rows, err := MapRecords(nil)
	if err != nil || rows != nil {
		t.Fatalf("empty batch: rows=%v err=%v", rows, err)
	}
}
