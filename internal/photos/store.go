package photos

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/oakzazasd/Clothes-Inventory/pkg/config"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
)

// Store validates, resizes, and persists item photos on local disk.
// Filenames are random so uploads never collide or leak the original name.
type Store struct {
	dir       string
	maxBytes  int64
	processor processor
	logg      *logger.Logger
}

func NewStore(cfg config.PhotosConfig, logg *logger.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("photos: dir is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("photos: logger is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("photos: create dir: %w", err)
	}
	return &Store{
		dir:       cfg.Dir,
		maxBytes:  cfg.MaxUploadBytes(),
		processor: newProcessor(cfg.MaxWidth, cfg.JPEGQuality),
		logg:      logg,
	}, nil
}

// Save reads an upload, normalizes it, and writes it under a fresh filename.
// The returned filename is what gets stored on the item row.
func (s *Store) Save(ctx context.Context, r io.Reader) (string, error) {
	reader := r
	if s.maxBytes > 0 {
		reader = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to read photo upload")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("photo exceeds the %d MB limit", s.maxBytes>>20))
	}

	result, err := s.processor.process(data)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "photo could not be processed")
	}

	filename := uuid.NewString() + result.ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), result.data, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store photo")
	}
	return filename, nil
}

// Remove deletes a stored photo. Failures are logged and swallowed: a
// leftover file on disk is not worth failing the item operation over.
func (s *Store) Remove(ctx context.Context, filename string) {
	path, err := s.resolve(filename)
	if err != nil {
		s.logg.Error(ctx, "refusing to remove photo outside the store", err)
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logg.Error(ctx, "failed to remove photo", err)
	}
}

// Open returns a handle on a stored photo for serving.
func (s *Store) Open(filename string) (*os.File, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "photo not found")
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "photo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to open photo")
	}
	return f, nil
}

// resolve rejects filenames that would escape the photo directory.
func (s *Store) resolve(filename string) (string, error) {
	clean := strings.TrimSpace(filename)
	if clean == "" || clean != filepath.Base(clean) || strings.HasPrefix(clean, ".") {
		return "", fmt.Errorf("invalid photo filename %q", filename)
	}
	return filepath.Join(s.dir, clean), nil
}
