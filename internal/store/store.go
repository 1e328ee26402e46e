// Package store provides the parse cache interface and its SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/lipsanen/tmemo/internal/model"
)

// ErrNotFound is returned when no cache entry exists for a path.
var ErrNotFound = errors.New("store: not found")

// Entry is the parse result of one source file.
type Entry struct {
	Path           string
	ModTime        time.Time
	ParsingVersion int
	Cards          []model.Card
	UpdatedAt      time.Time
}

// Fresh reports whether e still describes a file with the given
// modification time parsed by the given parser version.
func (e *Entry) Fresh(modTime time.Time, parsingVersion int) bool {
	return e.ModTime.Equal(modTime) && e.ParsingVersion == parsingVersion
}

// Cache defines the parse cache interface.
type Cache interface {
	// Get returns the entry for path or ErrNotFound.
	Get(ctx context.Context, path string) (*Entry, error)

	// Put stores or replaces the entry for e.Path.
	Put(ctx context.Context, e Entry) error

	// List returns all entries ordered by path, without their cards.
	List(ctx context.Context) ([]Entry, error)

	// Prune deletes entries whose path is not in keep. Returns the number deleted.
	Prune(ctx context.Context, keep []string) (int, error)

	// Close closes the cache.
	Close() error
}
