package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/recshelf/recshelf-api/internal/api/router"
	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/store/cache"
	"github.com/recshelf/recshelf-api/internal/store/memory"
)

func newServer(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	st := memory.New()
	return st, router.Router(st, cache.New(nil), nil)
}

func do(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		rd = bytes.NewReader(buf)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListBooks_EmptyIsArray(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "GET", "/api/books", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list must encode as [], got %q", got)
	}
}

func TestAdminCreateBook_Combined(t *testing.T) {
	st, h := newServer(t)

	rec := do(h, "POST", "/api/admin/books", models.CombinedInsert{
		Title:           "Sapiens",
		Author:          "Yuval Noah Harari",
		RecommenderName: "Bill Gates",
		RecommenderOrg:  "Microsoft",
		Comment:         "must read",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body)
	}

	var cr models.CompleteRecommendation
	if err := json.Unmarshal(rec.Body.Bytes(), &cr); err != nil {
		t.Fatal(err)
	}
	if cr.Book.Title != "Sapiens" || cr.Recommender.Name != "Bill Gates" || cr.Comment != "must read" {
		t.Fatalf("bad payload: %+v", cr)
	}

	books, _ := st.GetAllBooks(t.Context())
	if len(books) != 1 {
		t.Errorf("book not persisted")
	}
}

func TestAdminCreateBook_ValidationProblem(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "POST", "/api/admin/books", map[string]string{"title": "No Author"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("want problem+json, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "author") || !strings.Contains(body, "recommenderName") {
		t.Errorf("missing field errors: %s", body)
	}
}

func TestGetBook_NonNumericID(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "GET", "/api/books/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "GET", "/api/books/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestSearchBooks(t *testing.T) {
	st, h := newServer(t)
	if _, err := st.CreateBook(t.Context(), models.InsertBook{Title: "SAPIENS", Author: "Harari"}); err != nil {
		t.Fatal(err)
	}

	rec := do(h, "GET", "/api/books/search?q=sapiens", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var out []models.Book
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Title != "SAPIENS" {
		t.Fatalf("case-insensitive search failed: %+v", out)
	}
}

func TestBookRecommenders(t *testing.T) {
	st, h := newServer(t)
	cr, err := st.CreateCompleteRecommendation(t.Context(), models.CombinedInsert{
		Title: "Sapiens", Author: "Harari", RecommenderName: "Bill Gates",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := do(h, "GET", fmt.Sprintf("/api/books/%d/recommenders", cr.Book.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var out []models.CompleteRecommendation
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Recommender.Name != "Bill Gates" {
		t.Fatalf("bad payload: %+v", out)
	}
}

func TestAdminPatchBook_EmptyTitleRejected(t *testing.T) {
	st, h := newServer(t)
	b, _ := st.CreateBook(t.Context(), models.InsertBook{Title: "Dune", Author: "Herbert"})

	rec := do(h, "PUT", fmt.Sprintf("/api/admin/books/%d", b.ID), map[string]string{"title": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}

	got, _ := st.GetBookByID(t.Context(), b.ID)
	if got.Title != "Dune" {
		t.Errorf("rejected patch must not mutate: %+v", got)
	}
}

func TestAdminDeleteBook(t *testing.T) {
	st, h := newServer(t)
	b, _ := st.CreateBook(t.Context(), models.InsertBook{Title: "Dune", Author: "Herbert"})

	rec := do(h, "DELETE", fmt.Sprintf("/api/admin/books/%d", b.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", rec.Code)
	}

	rec = do(h, "DELETE", fmt.Sprintf("/api/admin/books/%d", b.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: want 404, got %d", rec.Code)
	}
}

func TestAdminCreateRecommendation_DanglingRefRejected(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "POST", "/api/admin/recommendations", models.InsertRecommendation{
		BookID: 1, RecommenderID: 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for dangling refs, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bookId") {
		t.Errorf("missing field error: %s", rec.Body)
	}
}

func TestAdminImportCSV(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "POST", "/api/admin/import-csv", []map[string]string{
		{"title": "Sapiens", "author": "Harari", "recommender": "Bill Gates (Microsoft)"},
		{"title": "sapiens", "author": "Harari", "recommender": "bill gates"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body)
	}
	var res struct {
		Count   int `json:"count"`
		Skipped int `json:"skipped"`
		Total   int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Count != 1 || res.Skipped != 1 || res.Total != 2 {
		t.Fatalf("want {1 1 2}, got %+v", res)
	}
}

func TestAdminImportCSV_MissingColumns(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "POST", "/api/admin/import-csv", []map[string]string{{"title": "Sapiens"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestRecommenderBooks(t *testing.T) {
	st, h := newServer(t)
	cr, err := st.CreateCompleteRecommendation(t.Context(), models.CombinedInsert{
		Title: "Sapiens", Author: "Harari", RecommenderName: "Bill Gates",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := do(h, "GET", fmt.Sprintf("/api/recommenders/%d/books", cr.Recommender.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	rec = do(h, "GET", "/api/recommenders/999/books", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404 for unknown recommender, got %d", rec.Code)
	}
}

func TestUploadWithoutStorageConfigured(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "POST", "/api/admin/upload", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503 without object storage, got %d", rec.Code)
	}
}

func TestCategories(t *testing.T) {
	_, h := newServer(t)

	rec := do(h, "GET", "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var out []string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Error("expected a non-empty category list")
	}
}
