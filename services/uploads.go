package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

// ErrUnsupportedMediaType is returned for uploads with a disallowed extension.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ErrFileTooLarge is returned when the upload exceeds MaxUploadBytes.
var ErrFileTooLarge = errors.New("file too large")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore persists uploaded images under a directory served at /uploads.
// Files get random names so an upload can never clobber another.
type ImageStore struct {
	dir string
}

// NewImageStore creates the upload directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// AllowedExtension reports whether the filename carries an accepted image
// extension. Matching is on extension only; content sniffing is out of scope.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes an uploaded image to disk and returns the public URL path.
func (s *ImageStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if !AllowedExtension(fileHeader.Filename) {
		return "", ErrUnsupportedMediaType
	}
	if fileHeader.Size > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxUploadBytes+1)); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	log.Debug().Str("file", name).Int64("size", fileHeader.Size).Msg("image stored")
	return "/uploads/" + name, nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *ImageStore) Dir() string {
	return s.dir
}
