// Package storage implements the archive storage contract over the local
// filesystem. Containers map to directories under a root; stored files get a
// generated name and are served back through the application's static file
// route.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

type DiskStorage struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

func NewDiskStorage(root, baseURL string, logger *slog.Logger) *DiskStorage {
	return &DiskStorage{
		root:    root,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Store writes the archive under a fresh UUID-based name, preserving the
// original extension, and returns the public URL it will be served from.
func (s *DiskStorage) Store(ctx context.Context, container string, file domain.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, container)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating container %s: %w", container, err)
	}

	name := uuid.NewString() + path.Ext(file.Name)

	if err := os.WriteFile(filepath.Join(dir, name), file.Data, 0o644); err != nil {
		return "", fmt.Errorf("storing archive %s: %w", name, err)
	}

	s.logger.Info("archive stored", "container", container, "name", name, "contentType", file.ContentType)

	return s.baseURL + "/static/" + container + "/" + name, nil
}

// Delete removes the archive a URL points at. An empty URL is a no-op, and so
// is an archive that is already gone.
func (s *DiskStorage) Delete(ctx context.Context, fileURL, container string) error {
	if fileURL == "" {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	parsed, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("parsing archive url: %w", err)
	}

	name := path.Base(parsed.Path)

	err = os.Remove(filepath.Join(s.root, container, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting archive %s: %w", name, err)
	}

	s.logger.Info("archive deleted", "container", container, "name", name)

	return nil
}
