// Package shared holds matching helpers used by both store implementations
// and the import pipeline, so "same title" means the same thing everywhere.
package shared

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Fold trims and case-folds a string for comparison. Proper Unicode folding
// matters here: titles and names mix ASCII and Japanese text.
func Fold(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// EqualFold reports case-insensitive exact equality after trimming.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports a case-insensitive substring match.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// DedupKey builds the in-batch import dedup key for a title/recommender pair.
func DedupKey(title, recommender string) string {
	return Fold(title) + "\x1f" + Fold(recommender)
}
