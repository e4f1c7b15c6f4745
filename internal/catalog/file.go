package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bazarbot/pkg/models"
)

// FileStore keeps the whole catalog in a single JSON snapshot that is
// rewritten in full on every create. The mutex is held across the entire
// append-and-flush so two concurrent creates can never both start from the
// same pre-append snapshot, and the temp-file rename means the file on disk
// is always a complete, parseable collection.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	listings []models.Listing
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(b, &s.listings); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) Create(ctx context.Context, in models.NewListing) (models.Listing, error) {
	listing := models.Listing{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]models.Listing(nil), s.listings...), listing)
	if err := s.flush(next); err != nil {
		return models.Listing{}, err
	}
	s.listings = next
	return listing, nil
}

// flush writes the full collection to a temp file and renames it into
// place. Caller holds the write lock.
func (s *FileStore) flush(listings []models.Listing) error {
	b, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".listings-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	// the rename itself is only durable once the directory entry is synced
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open snapshot dir: %w", err)
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return fmt.Errorf("sync snapshot dir: %w", err)
	}
	return d.Close()
}

func (s *FileStore) List(ctx context.Context) ([]models.Listing, error) {
	s.mu.RLock()
	out := append([]models.Listing(nil), s.listings...)
	s.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func (s *FileStore) ListByCategory(ctx context.Context, category string) ([]models.Listing, error) {
	s.mu.RLock()
	out := make([]models.Listing, 0)
	for _, l := range s.listings {
		if strings.EqualFold(l.Category, category) {
			out = append(out, l)
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func (s *FileStore) Close() error {
	return nil
}

// sortNewestFirst orders by createdAt descending. The sort is stable so
// wall-clock ties keep their insertion order within a single read.
func sortNewestFirst(listings []models.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}
