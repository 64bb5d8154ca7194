package services

import (
	"context"
	"fmt"

	"food-menu/models"
)

// GroupProducts buckets products by exact category name. Buckets follow the
// order of names, with the uncategorized bucket last; empty buckets are kept.
// Products whose category is not in names land in the uncategorized bucket.
func GroupProducts(names []string, products []models.Product) models.MenuView {
	view := make(models.MenuView, 0, len(names)+1)
	index := make(map[string]int, len(names)+1)
	for _, name := range names {
		if name == models.Uncategorized {
			continue
		}
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = len(view)
		view = append(view, models.MenuSection{Category: name})
	}
	fallback := len(view)
	index[models.Uncategorized] = fallback
	view = append(view, models.MenuSection{Category: models.Uncategorized})

	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = fallback
		}
		view[i].Products = append(view[i].Products, p)
	}
	return view
}

// BuildMenuView groups products by category and drops empty buckets.
func BuildMenuView(names []string, products []models.Product) models.MenuView {
	return GroupProducts(names, products).NonEmpty()
}

// Menu builds the public menu and the admin dashboard.
type Menu struct {
	categories CategoryResolver
	products   ProductStore
}

func NewMenu(categories CategoryResolver, products ProductStore) *Menu {
	return &Menu{categories: categories, products: products}
}

// View returns the public menu. When products cannot be listed the view is
// empty and the error is returned for the caller to report.
func (m *Menu) View(ctx context.Context) (models.MenuView, error) {
	products, err := m.products.ListProducts(ctx)
	if err != nil {
		return models.MenuView{}, fmt.Errorf("list products: %w", err)
	}
	return BuildMenuView(m.categories.ResolveCategories(ctx), products), nil
}

// Dashboard is the admin panel view.
type Dashboard struct {
	Products   []models.Product
	Categories []models.Category
	// Sections holds every category bucket, empty ones included.
	Sections models.MenuView
}

// Count returns the number of products filed under category.
func (d Dashboard) Count(category string) int {
	products, _ := d.Sections.Section(category)
	return len(products)
}

type categoryLister interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

func (m *Menu) Dashboard(ctx context.Context) (Dashboard, error) {
	products, err := m.products.ListProducts(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list products: %w", err)
	}

	var cats []models.Category
	if lister, ok := m.categories.(categoryLister); ok {
		cats, err = lister.Categories(ctx)
		if err != nil {
			return Dashboard{Products: products}, fmt.Errorf("list categories: %w", err)
		}
	} else {
		for i, name := range m.categories.ResolveCategories(ctx) {
			cats = append(cats, models.Category{Name: name, SortOrder: i})
		}
	}

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return Dashboard{
		Products:   products,
		Categories: cats,
		Sections:   GroupProducts(names, products),
	}, nil
}
