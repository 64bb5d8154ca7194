package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"food-menu/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ImageStore uploads product images and exposes their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// ImageUpload is a file received from the admin form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

var allowedImageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// AllowedImage reports whether filename has an accepted image extension.
func AllowedImage(filename string) bool {
	return allowedImageExt[strings.ToLower(path.Ext(filename))]
}

// ImageKey returns a collision-free object key for filename.
func ImageKey(filename string) string {
	return "public/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
}

// Images stores uploaded product images.
type Images struct {
	store ImageStore
	log   zerolog.Logger
}

func NewImages(store ImageStore, log zerolog.Logger) *Images {
	return &Images{store: store, log: log}
}

// Resolve returns the image URL to store on a product. Without a usable upload,
// or when the upload fails, it falls back to current or the placeholder.
func (im *Images) Resolve(ctx context.Context, upload *ImageUpload, current string) string {
	fallback := current
	if fallback == "" {
		fallback = models.PlaceholderImage
	}
	if upload == nil || upload.Filename == "" || upload.Body == nil {
		return fallback
	}
	url, err := im.upload(ctx, upload)
	if err != nil {
		im.log.Warn().Err(err).Str("filename", upload.Filename).Msg("image upload failed, keeping previous image")
		return fallback
	}
	return url
}

func (im *Images) upload(ctx context.Context, upload *ImageUpload) (string, error) {
	if im == nil || im.store == nil {
		return "", fmt.Errorf("no image store configured")
	}
	if !AllowedImage(upload.Filename) {
		return "", fmt.Errorf("%w: file type not allowed", ErrInvalidInput)
	}
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := ImageKey(upload.Filename)
	if err := im.store.Upload(ctx, key, upload.Body, upload.Size, contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return im.store.PublicURL(key), nil
}
