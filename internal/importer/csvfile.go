package importer

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/recshelf/recshelf-api/internal/models"
)

// ReadFile loads a CSV file from disk (header row first) and maps it into
// import rows. Used for the optional seed data set loaded at startup.
func ReadFile(path string) ([]models.ImportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are tolerated; short cells read as empty

	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(all) < 2 {
		return nil, nil
	}

	headers := all[0]
	records := make([]map[string]string, 0, len(all)-1)
	for _, cells := range all[1:] {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				rec[h] = cells[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return MapRecords(records)
}
