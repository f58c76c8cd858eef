package memory_test

import (
	"errors"
	"testing"

	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/memory"
)

func combined(title, author, name string) models.CombinedInsert {
	return models.CombinedInsert{Title: title, Author: author, RecommenderName: name}
}

func TestCreateCompleteRecommendation_ReusesEntities(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	first, err := st.CreateCompleteRecommendation(ctx, combined("Sapiens", "Yuval Noah Harari", "Bill Gates"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.CreateCompleteRecommendation(ctx, combined("sapiens", "Yuval Noah Harari", "bill gates"))
	if err != nil {
		t.Fatal(err)
	}

	if first.Book.ID != second.Book.ID {
		t.Errorf("book not reused: %d vs %d", first.Book.ID, second.Book.ID)
	}
	if first.Recommender.ID != second.Recommender.ID {
		t.Errorf("recommender not reused: %d vs %d", first.Recommender.ID, second.Recommender.ID)
	}
	if first.ID == second.ID {
		t.Error("expected two distinct recommendations")
	}

	books, _ := st.GetAllBooks(ctx)
	recs, _ := st.GetAllRecommenders(ctx)
	links, _ := st.GetAllRecommendations(ctx)
	if len(books) != 1 || len(recs) != 1 || len(links) != 2 {
		t.Errorf("want 1 book / 1 recommender / 2 recommendations, got %d/%d/%d",
			len(books), len(recs), len(links))
	}
}

func TestCreateCompleteRecommendation_EnrichesImage(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	if _, err := st.CreateCompleteRecommendation(ctx, combined("Factfulness", "Hans Rosling", "A")); err != nil {
		t.Fatal(err)
	}

	in := combined("Factfulness", "Hans Rosling", "B")
	in.ImageURL = "https://img.example/factfulness.jpg"
	in.PublishYear = "2018"
	cr, err := st.CreateCompleteRecommendation(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	if cr.Book.ImageURL != in.ImageURL {
		t.Errorf("image not enriched: %q", cr.Book.ImageURL)
	}
	got, _ := st.GetBookByID(ctx, cr.Book.ID)
	if got.ImageURL != in.ImageURL || got.PublishYear != "2018" {
		t.Errorf("stored book not enriched: %+v", got)
	}
}

func TestDeleteBook_CascadesRecommendations(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	cr, err := st.CreateCompleteRecommendation(ctx, combined("Zero to One", "Peter Thiel", "Elon Musk"))
	if err != nil {
		t.Fatal(err)
	}

	found, err := st.DeleteBook(ctx, cr.Book.ID)
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}

	links, _ := st.GetAllRecommendations(ctx)
	if len(links) != 0 {
		t.Errorf("recommendations not cascaded: %d left", len(links))
	}
	// The recommender survives a book delete.
	if _, err := st.GetRecommenderByID(ctx, cr.Recommender.ID); err != nil {
		t.Errorf("recommender should survive: %v", err)
	}

	found, err = st.DeleteBook(ctx, cr.Book.ID)
	if err != nil || found {
		t.Errorf("second delete: found=%v err=%v", found, err)
	}
}

func TestDeleteRecommender_Cascades(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	cr, err := st.CreateCompleteRecommendation(ctx, combined("Dune", "Frank Herbert", "Jeff Bezos"))
	if err != nil {
		t.Fatal(err)
	}

	found, err := st.DeleteRecommender(ctx, cr.Recommender.ID)
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}
	links, _ := st.GetAllRecommendations(ctx)
	if len(links) != 0 {
		t.Errorf("recommendations not cascaded: %d left", len(links))
	}
	if _, err := st.GetBookByID(ctx, cr.Book.ID); err != nil {
		t.Errorf("book should survive: %v", err)
	}
}

func TestGetCompleteRecommendationsByBookID_DedupesFirstWins(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	in := combined("The Intelligent Investor", "Benjamin Graham", "Warren Buffett")
	in.Comment = "first"
	first, err := st.CreateCompleteRecommendation(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	in.Comment = "second"
	if _, err := st.CreateCompleteRecommendation(ctx, in); err != nil {
		t.Fatal(err)
	}

	out, err := st.GetCompleteRecommendationsByBookID(ctx, first.Book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 deduped entry, got %d", len(out))
	}
	if out[0].Comment != "first" {
		t.Errorf("earliest recommendation should win, got %q", out[0].Comment)
	}
}

func TestGetCompleteRecommendations_IntegrityFault(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	rec, err := st.CreateRecommender(ctx, models.InsertRecommender{Name: "Ghost"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateRecommendation(ctx, models.InsertRecommendation{BookID: 999, RecommenderID: rec.ID}); err != nil {
		t.Fatal(err)
	}

	_, err = st.GetCompleteRecommendationsByRecommenderID(ctx, rec.ID)
	if !errors.Is(err, store.ErrIntegrity) {
		t.Errorf("want ErrIntegrity, got %v", err)
	}
}

func TestSearchBooks_CaseInsensitive(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	if _, err := st.CreateBook(ctx, models.InsertBook{Title: "SAPIENS", Author: "Yuval Noah Harari"}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateBook(ctx, models.InsertBook{Title: "Dune", Author: "Frank Herbert"}); err != nil {
		t.Fatal(err)
	}

	out, err := st.SearchBooks(ctx, "sapiens")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Title != "SAPIENS" {
		t.Fatalf("search miss: %+v", out)
	}

	// Author matches too.
	out, _ = st.SearchBooks(ctx, "herbert")
	if len(out) != 1 || out[0].Title != "Dune" {
		t.Fatalf("author search miss: %+v", out)
	}
}

func TestUpdateBook_PreservesOmittedFields(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	b, err := st.CreateBook(ctx, models.InsertBook{
		Title: "Dune", Author: "Frank Herbert", Category: "SF", Description: "spice",
	})
	if err != nil {
		t.Fatal(err)
	}

	title := "Dune Messiah"
	got, err := st.UpdateBook(ctx, b.ID, models.BookPatch{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Dune Messiah" || got.Author != "Frank Herbert" || got.Category != "SF" || got.Description != "spice" {
		t.Errorf("patch clobbered fields: %+v", got)
	}

	// Explicit empty string clears a field.
	empty := ""
	got, err = st.UpdateBook(ctx, b.ID, models.BookPatch{Description: &empty})
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != "" || got.Category != "SF" {
		t.Errorf("empty patch mishandled: %+v", got)
	}
}

func TestUpdateBook_NotFound(t *testing.T) {
	st := memory.New()
	title := "x"
	_, err := st.UpdateBook(t.Context(), 42, models.BookPatch{Title: &title})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestGetRecommendersByBookID_Dedupes(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	cr, err := st.CreateCompleteRecommendation(ctx, combined("Sapiens", "Harari", "Bill Gates"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateCompleteRecommendation(ctx, combined("Sapiens", "Harari", "Bill Gates")); err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateCompleteRecommendation(ctx, combined("Sapiens", "Harari", "Barack Obama")); err != nil {
		t.Fatal(err)
	}

	out, err := st.GetRecommendersByBookID(ctx, cr.Book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 distinct recommenders, got %d", len(out))
	}
}

func TestIDsAreMonotonic(t *testing.T) {
	st := memory.New()
	ctx := t.Context()

	b1, _ := st.CreateBook(ctx, models.InsertBook{Title: "A", Author: "a"})
	if _, err := st.DeleteBook(ctx, b1.ID); err != nil {
		t.Fatal(err)
	}
	b2, _ := st.CreateBook(ctx, models.InsertBook{Title: "B", Author: "b"})
	if b2.ID <= b1.ID {
		t.Errorf("ids must not be reused: %d after %d", b2.ID, b1.ID)
	}
}
