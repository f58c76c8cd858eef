package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.csv")
	data := "title,author,recommender,recommendation period\n" +
		"Sapiens,Yuval Noah Harari,Bill Gates (Microsoft),2015 Gates Notes\n" +
		"Dune,Frank Herbert,Elon Musk\n" // ragged row, missing period cell
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	if rows[0].RecommenderName != "Bill Gates" || rows[0].RecommenderOrg != "Microsoft" {
		t.Errorf("recommender not parsed: %+v", rows[0])
	}
	if rows[1].RecommendationDate != "" {
		t.Errorf("missing cell should read empty: %+v", rows[1])
	}
}

func TestReadFile_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte("title,author,recommender\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rows, err := ReadFile(path)
	if err != nil || rows != nil {
		t.Fatalf("header-only file: rows=%v err=%v", rows, err)
	}
}
