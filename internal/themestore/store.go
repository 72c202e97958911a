// Package themestore persists uploaded theme stylesheets on disk: one
// metadata.json mapping theme ids to records, plus one {id}.css file per
// theme.
package themestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for store operations.
var (
	ErrNotFound  = errors.New("theme not found")
	ErrEmptyCSS  = errors.New("theme css cannot be empty")
	ErrEmptyID   = errors.New("theme id cannot be empty")
	ErrCorruptDB = errors.New("theme metadata is corrupt")
)

const metadataFile = "metadata.json"

// Record describes a stored theme. Identity is the ID, generated at
// creation and immutable; there is no update-in-place operation.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store provides persistent storage for themes.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating theme directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Create stores a new theme and returns its record.
func (s *Store) Create(name, cssText string) (Record, error) {
	if cssText == "" {
		return Record{}, ErrEmptyCSS
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.loadMetadata()
	if err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rec.Name == "" {
		rec.Name = rec.ID
	}

	if err := os.WriteFile(s.cssPath(rec.ID), []byte(cssText), 0o644); err != nil {
		return Record{}, fmt.Errorf("writing theme css: %w", err)
	}

	meta[rec.ID] = rec
	if err := s.saveMetadata(meta); err != nil {
		_ = os.Remove(s.cssPath(rec.ID))
		return Record{}, err
	}

	return rec, nil
}

// Get returns a theme's record and stylesheet text.
func (s *Store) Get(id string) (Record, string, error) {
	if id == "" {
		return Record{}, "", ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.loadMetadata()
	if err != nil {
		return Record{}, "", err
	}

	rec, ok := meta[id]
	if !ok {
		return Record{}, "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	css, err := os.ReadFile(s.cssPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, "", fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return Record{}, "", fmt.Errorf("reading theme css: %w", err)
	}

	return rec, string(css), nil
}

// List returns all theme records sorted by creation time.
func (s *Store) List() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.loadMetadata()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(meta))
	for _, rec := range meta {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Delete removes a theme and its stylesheet.
func (s *Store) Delete(id string) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.loadMetadata()
	if err != nil {
		return err
	}

	if _, ok := meta[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	delete(meta, id)
	if err := s.saveMetadata(meta); err != nil {
		return err
	}

	if err := os.Remove(s.cssPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing theme css: %w", err)
	}
	return nil
}

func (s *Store) cssPath(id string) string {
	return filepath.Join(s.dir, id+".css")
}

// loadMetadata reads the id-to-record map. A missing file means an empty
// store, not an error. Caller holds the lock.
func (s *Store) loadMetadata() (map[string]Record, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, metadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]Record{}, nil
		}
		return nil, fmt.Errorf("reading theme metadata: %w", err)
	}

	var meta map[string]Record
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDB, err)
	}
	if meta == nil {
		meta = map[string]Record{}
	}
	return meta, nil
}

// saveMetadata writes the map atomically via tmp+rename. Caller holds the
// lock.
func (s *Store) saveMetadata(meta map[string]Record) error {
	path := filepath.Join(s.dir, metadataFile)
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding theme metadata: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing theme metadata: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing theme metadata: %w", err)
	}
	return nil
}
