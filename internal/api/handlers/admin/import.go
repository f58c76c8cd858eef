package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/recshelf/recshelf-api/internal/api/apperr"
	"github.com/recshelf/recshelf-api/internal/api/httpx"
	"github.com/recshelf/recshelf-api/internal/importer"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/cache"
)

// ImportCSV accepts a JSON array of parsed row records, one object per CSV
// row keyed by header name. The whole batch is rejected when the mandatory
// columns are missing; individual bad rows are counted as skipped.
func ImportCSV(st store.Store, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var records []map[string]string
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		rows, err := importer.MapRecords(records)
		if errors.Is(err, importer.ErrMissingColumns) {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid import payload")
			return
		}

		res, err := importer.ImportRows(r.Context(), st, rows)
		if err != nil {
			apperr.HandleDBError(w, r, err, "Failed to import rows")
			return
		}
		if res.Count > 0 {
			c.Bump(r.Context())
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	})
}
