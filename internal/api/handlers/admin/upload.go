package admin

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strconv"

	"github.com/recshelf/recshelf-api/internal/api/apperr"
	"github.com/recshelf/recshelf-api/internal/api/httpx"
	"github.com/recshelf/recshelf-api/internal/models"
	"github.com/recshelf/recshelf-api/internal/storage/s3"
	"github.com/recshelf/recshelf-api/internal/store"
	"github.com/recshelf/recshelf-api/internal/store/cache"
)

const maxUploadSize = 8 << 20 // images only

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload accepts a multipart image, stores it in the object bucket and
// returns its public URL. Optional "type" (book|recommender) and "entityId"
// form fields attach the image to an existing row in the same request.
func Upload(st store.Store, sc *s3.Client, c *cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sc == nil {
			httpx.ErrorJSON(w, http.StatusServiceUnavailable, "image storage is not configured")
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "missing image file")
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		ext, ok := allowedImageTypes[contentType]
		if !ok {
			httpx.ErrorJSON(w, http.StatusBadRequest, "unsupported image type, use jpeg, png or webp")
			return
		}
		if header.Size <= 0 || header.Size > maxUploadSize {
			httpx.ErrorJSON(w, http.StatusBadRequest, "image too large")
			return
		}

		objectKey := "uploads/" + randomKey() + ext
		if err := sc.Upload(r.Context(), objectKey, file, contentType, header.Size); err != nil {
			log.Printf("[upload] %s: %v", path.Base(header.Filename), err)
			httpx.ErrorJSON(w, http.StatusBadGateway, "failed to store image")
			return
		}

		imageURL, err := sc.PublicURL(r.Context(), objectKey)
		if err != nil {
			log.Printf("[upload] resolve url for %s: %v", objectKey, err)
			httpx.ErrorJSON(w, http.StatusBadGateway, "failed to store image")
			return
		}

		if kind := r.FormValue("type"); kind != "" {
			if err := attachImage(r, st, kind, imageURL); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					httpx.ErrorJSON(w, http.StatusNotFound, kind+" not found")
					return
				}
				var ve *models.ValidationError
				if errors.As(err, &ve) {
					apperr.WriteValidation(w, r, ve)
					return
				}
				apperr.HandleDBError(w, r, err, "Failed to attach image")
				return
			}
			c.Bump(r.Context())
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
	})
}

func attachImage(r *http.Request, st store.Store, kind, imageURL string) error {
	id, err := strconv.Atoi(r.FormValue("entityId"))
	if err != nil || id <= 0 {
		return &models.ValidationError{
			Fields: []models.FieldError{{Field: "entityId", Message: "entityId must be a positive integer"}},
		}
	}

	switch kind {
	case "book":
		_, err = st.UpdateBook(r.Context(), id, models.BookPatch{ImageURL: &imageURL})
	case "recommender":
		_, err = st.UpdateRecommender(r.Context(), id, models.RecommenderPatch{ImageURL: &imageURL})
	default:
		return &models.ValidationError{
			Fields: []models.FieldError{{Field: "type", Message: "type must be book or recommender"}},
		}
	}
	return err
}

func randomKey() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%x", b)
	}
	return hex.EncodeToString(b[:])
}
