package services

import (
	"context"
	"errors"

	"food-menu/models"
)

var (
	// ErrNotFound reports a product or category id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput reports a rejected form value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported reports an operation the configured backend cannot serve.
	ErrUnsupported = errors.New("not supported by this store")
)

// ProductStore persists products. ListProducts returns products in display order.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CategoryStore persists categories. ListCategories returns them ordered by
// sort order, then id.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, c models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// ChangeNotifier is told about successful admin mutations.
type ChangeNotifier interface {
	NotifyChange(ctx context.Context, text string)
}

type nopNotifier struct{}

func (nopNotifier) NotifyChange(context.Context, string) {}
