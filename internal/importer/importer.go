package importer

import (
	"context"
	"errors"
	"log"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/shared"
)

// Result reports the outcome of a bulk import batch.
type Result struct {
	Count   int `json:"count"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// ImportRows feeds mapped rows through the store. A row is skipped when the
// same title/recommender pair already appeared earlier in the batch, when the
// store already links that book and recommender, or when its creation fails.
// One bad row never aborts the batch.
func ImportRows(ctx context.Context, st store.Store, rows []models.ImportRow) (Result, error) {
	res := Result{Total: len(rows)}
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		key := shared.DedupKey(row.Title, row.RecommenderName)
		if _, dup := seen[key]; dup {
			res.Skipped++
			continue
		}
		seen[key] = struct{}{}

		linked, err := alreadyLinked(ctx, st, row)
		if err != nil {
			log.Printf("[import] row %d (%q): existence check failed: %v", i+1, row.Title, err)
			res.Skipped++
			continue
		}
		if linked {
			res.Skipped++
			continue
		}

		date, medium := SplitPeriod(row.RecommendationDate)
		_, err = st.CreateCompleteRecommendation(ctx, models.CombinedInsert{
			Title:                row.Title,
			Author:               row.Author,
			Category:             row.Category,
			ImageURL:             row.ImageURL,
			PublishYear:          row.PublishYear,
			Description:          row.Description,
			RecommenderName:      row.RecommenderName,
			RecommenderOrg:       row.RecommenderOrg,
			Comment:              row.Comment,
			RecommendationDate:   date,
			RecommendationMedium: medium,
			Source:               row.Source,
			SourceURL:            row.SourceURL,
			Reason:               row.Reason,
		})
		if err != nil {
			log.Printf("[import] row %d (%q / %q): %v", i+1, row.Title, row.RecommenderName, err)
			res.Skipped++
			continue
		}
		res.Count++
	}
	return res, nil
}

// alreadyLinked reports whether the store holds this exact book+recommender
// pair with a recommendation between them.
func alreadyLinked(ctx context.Context, st store.Store, row models.ImportRow) (bool, error) {
	book, err := st.GetBookByTitle(ctx, row.Title)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	rec, err := st.GetRecommenderByName(ctx, row.RecommenderName)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	links, err := st.GetCompleteRecommendationsByBookID(ctx, book.ID)
	if err != nil {
		return false, err
	}
	for _, cr := range links {
		if cr.RecommenderID == rec.ID {
			return true, nil
		}
	}
	return false, nil
}
