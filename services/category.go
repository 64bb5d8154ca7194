package services

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"food-menu/models"

	"github.com/rs/zerolog"
)

var errNoCategoryStore = errors.New("category store not configured")

// CategoryResolver returns the ordered category names used to build the menu.
type CategoryResolver interface {
	ResolveCategories(ctx context.Context) []string
}

// FixedCategories is a category list baked into configuration.
type FixedCategories []string

func (f FixedCategories) ResolveCategories(context.Context) []string {
	return slices.Clone([]string(f))
}

// StoreCategories reads categories from a CategoryStore. Any retrieval failure
// yields an empty list, which renders as an uncategorized-only menu.
type StoreCategories struct {
	Store CategoryStore
	Log   zerolog.Logger
}

func (s StoreCategories) ResolveCategories(ctx context.Context) []string {
	cats, err := s.list(ctx)
	if err != nil {
		s.Log.Warn().Err(err).Msg("resolve categories")
		return []string{}
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names
}

// Categories returns the full category records; the admin dashboard needs ids.
func (s StoreCategories) Categories(ctx context.Context) ([]models.Category, error) {
	return s.list(ctx)
}

func (s StoreCategories) list(ctx context.Context) ([]models.Category, error) {
	if s.Store == nil {
		return nil, errNoCategoryStore
	}
	cats, err := s.Store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	SortCategories(cats)
	return cats, nil
}

// SortCategories orders categories by SortOrder, then ID, in place.
func SortCategories(cats []models.Category) {
	slices.SortStableFunc(cats, func(a, b models.Category) int {
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
