package models

import "github.com/shopspring/decimal"

const (
	// Uncategorized is the reserved bucket for products whose category is missing
	// or does not match any known category.
	Uncategorized = "Uncategorized"

	PlaceholderImage   = "https://placehold.co/600x400/7838e9/fff?text=Image"
	DefaultProductName = "New product"
)

// Category is a named product grouping. Categories are displayed by ascending
// SortOrder, ties broken by ID.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// Product is a menu item. Category is free text and is not enforced to match an
// existing Category name.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	ImagePath   string          `json:"image_path"`
}

// Image returns the product image URL, falling back to the placeholder.
func (p Product) Image() string {
	if p.ImagePath == "" {
		return PlaceholderImage
	}
	return p.ImagePath
}

// MenuSection is one category bucket of a MenuView.
type MenuSection struct {
	Category string
	Products []Product
}

// MenuView maps category name to products, in category display order.
type MenuView []MenuSection

// NonEmpty returns the sections that hold at least one product, preserving order.
func (v MenuView) NonEmpty() MenuView {
	out := make(MenuView, 0, len(v))
	for _, s := range v {
		if len(s.Products) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Section returns the products of the named section.
func (v MenuView) Section(category string) ([]Product, bool) {
	for _, s := range v {
		if s.Category == category {
			return s.Products, true
		}
	}
	return nil, false
}

// Categories returns the section names in order.
func (v MenuView) Categories() []string {
	names := make([]string, 0, len(v))
	for _, s := range v {
		names = append(names, s.Category)
	}
	return names
}

// Count returns the number of products across all sections.
func (v MenuView) Count() int {
	n := 0
	for _, s := range v {
		n += len(s.Products)
	}
	return n
}
