// Package filestore keeps products in a local JSON document. Every operation
// reads the whole file and mutations rewrite it.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"food-menu/models"
	"food-menu/services"
)

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// load returns the stored products. A missing or unreadable document reads as empty.
func (s *Store) load() []models.Product {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return []models.Product{}
	}
	var rows []models.Product
	if err := json.Unmarshal(b, &rows); err != nil {
		return []models.Product{}
	}
	return rows
}

func (s *Store) save(rows []models.Product) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// NextID returns max(existing ids)+1, or 1 for an empty list.
func NextID(rows []models.Product) int64 {
	var max int64
	for _, p := range rows {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.load() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, services.ErrNotFound
}

func (s *Store) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.load()
	p.ID = NextID(rows)
	rows = append(rows, p)
	if err := s.save(rows); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.load()
	for i := range rows {
		if rows[i].ID == p.ID {
			rows[i] = p
			return s.save(rows)
		}
	}
	return services.ErrNotFound
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.load()
	kept := make([]models.Product, 0, len(rows))
	for _, p := range rows {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(rows) {
		return services.ErrNotFound
	}
	return s.save(kept)
}

var _ services.ProductStore = (*Store)(nil)

var errNotJSON = errors.New("not a product document")

// Check reports whether an existing document parses. A missing file is fine.
func (s *Store) Check() error {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var rows []models.Product
	if err := json.Unmarshal(b, &rows); err != nil {
		return fmt.Errorf("%w: %s: %v", errNotJSON, s.path, err)
	}
	return nil
}
