// Package importer turns loosely structured tabular rows into combined
// inserts and feeds them through the storage engine with deduplication.
package importer

import (
	"errors"
	"strings"

	"github.com/recshelf/recshelf-api/internal/models"
)

// Canonical column names. Unrecognized headers pass through lowercased.
const (
	colTitle       = "title"
	colAuthor      = "author"
	colRecommender = "recommender"
	colComment     = "comment"
	colPeriod      = "recommendationDate"
	colReason      = "reason"
	colCategory    = "category"
	colImageURL    = "imageUrl"
	colPublishYear = "publishYear"
	colDescription = "description"
	colSource      = "source"
	colSourceURL   = "sourceUrl"
)

// headerAliases maps the header spellings seen in real exports to canonical
// columns. Matching is case-insensitive on the trimmed header.
var headerAliases = map[string]string{
	"title":                 colTitle,
	"book title":            colTitle,
	"author":                colAuthor,
	"book author":           colAuthor,
	"recommender":           colRecommender,
	"recommender (org)":     colRecommender,
	"recommender name":      colRecommender,
	"recommended by":        colRecommender,
	"comment":               colComment,
	"recommendation period": colPeriod,
	"recommendation date":   colPeriod,
	"recommendationdate":    colPeriod,
	"period":                colPeriod,
	"reason":                colReason,
	"category":              colCategory,
	"image url":             colImageURL,
	"imageurl":              colImageURL,
	"publish year":          colPublishYear,
	"publishyear":           colPublishYear,
	"description":           colDescription,
	"source":                colSource,
	"source url":            colSourceURL,
	"sourceurl":             colSourceURL,
}

// ErrMissingColumns rejects a whole batch whose header row lacks the
// mandatory title / author / recommender columns.
var ErrMissingColumns = errors.New("import requires title, author and recommender columns")

func canonicalHeader(h string) string {
	key := strings.ToLower(strings.TrimSpace(h))
	if c, ok := headerAliases[key]; ok {
		return c
	}
	return key
}

// ParseRecommender splits a "Name (Organization)" display string. Without a
// parenthesized suffix the whole string is the name.
func ParseRecommender(s string) (name, org string) {
	s = strings.TrimSpace(s)
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open > 0 && close > open {
		return strings.TrimSpace(s[:open]), strings.TrimSpace(s[open+1 : close])
	}
	return s, ""
}

// categoryKeywords drives best-effort category inference from the title.
// Ordered because the first match wins. This is a convenience default the
// admin can override, not a classifier.
var categoryKeywords = []struct {
	keywords []string
	category string
}{
	{[]string{"business", "management"}, "ビジネス"},
	{[]string{"sapiens", "factfulness"}, "社会科学"},
	{[]string{"hitchhiker"}, "SF"},
	{[]string{"structures"}, "科学"},
	{[]string{"day", "remains"}, "小説"},
	{[]string{"investor", "investment"}, "投資"},
}

// InferCategory guesses a category from case-insensitive title keywords.
// No match leaves the category empty.
func InferCategory(title string) string {
	t := strings.ToLower(title)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(t, kw) {
				return ck.category
			}
		}
	}
	return ""
}

// SplitPeriod breaks a combined "date medium" period string into its date
// (first token) and medium (remaining tokens).
func SplitPeriod(s string) (date, medium string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// MapRecords converts raw row records (header name -> cell) into ImportRows.
// The batch is rejected outright when the mandatory columns are absent from
// the header set; rows without a title or author are dropped as empty.
func MapRecords(records []map[string]string) ([]models.ImportRow, error) {
	if len(records) == 0 {
		return nil, nil
	}

	have := make(map[string]bool)
	for k := range records[0] {
		have[canonicalHeader(k)] = true
	}
	if !have[colTitle] || !have[colAuthor] || !have[colRecommender] {
		return nil, ErrMissingColumns
	}

	var out []models.ImportRow
	for _, rec := range records {
		cells := make(map[string]string, len(rec))
		for k, v := range rec {
			cells[canonicalHeader(k)] = strings.TrimSpace(v)
		}
		if cells[colTitle] == "" || cells[colAuthor] == "" {
			continue
		}

		name, org := ParseRecommender(cells[colRecommender])
		row := models.ImportRow{
			Title:              cells[colTitle],
			Author:             cells[colAuthor],
			RecommenderName:    name,
			RecommenderOrg:     org,
			Comment:            cells[colComment],
			RecommendationDate: cells[colPeriod],
			Reason:             cells[colReason],
			Category:           cells[colCategory],
			ImageURL:           cells[colImageURL],
			PublishYear:        cells[colPublishYear],
			Description:        cells[colDescription],
			Source:             cells[colSource],
			SourceURL:          cells[colSourceURL],
		}
		if row.Category == "" {
			row.Category = InferCategory(row.Title)
		}
		out = append(out, row)
	}
	return out, nil
}
