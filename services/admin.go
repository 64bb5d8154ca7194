package services

import (
	"context"
	"fmt"
	"strings"

	"food-menu/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductInput carries an admin form submission. Nil Name or Description keep
// the stored value on update; Price and Category are always applied.
type ProductInput struct {
	Name        *string
	Description *string
	Price       decimal.Decimal
	Category    string
	Image       *ImageUpload
}

// CategoryInput carries a category form submission.
type CategoryInput struct {
	ID        int64
	Name      string
	SortOrder int
}

// ParsePrice parses a form price. An empty value is zero.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q", ErrInvalidInput, raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}
	return price, nil
}

// Admin applies admin panel mutations.
type Admin struct {
	products   ProductStore
	categories CategoryStore
	images     *Images
	notifier   ChangeNotifier
	log        zerolog.Logger
}

// NewAdmin wires the admin operations. categories may be nil when the backend
// only supports a fixed category list; notifier may be nil.
func NewAdmin(products ProductStore, categories CategoryStore, images *Images, notifier ChangeNotifier, log zerolog.Logger) *Admin {
	if images == nil {
		images = NewImages(nil, log)
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Admin{
		products:   products,
		categories: categories,
		images:     images,
		notifier:   notifier,
		log:        log,
	}
}

// CategoriesEditable reports whether categories can be managed at runtime.
func (a *Admin) CategoriesEditable() bool {
	return a.categories != nil
}

func (a *Admin) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	p := models.Product{
		Name:     models.DefaultProductName,
		Price:    in.Price,
		Category: categoryOrDefault(in.Category),
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	p.ImagePath = a.images.Resolve(ctx, in.Image, "")

	created, err := a.products.CreateProduct(ctx, p)
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	a.log.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	a.notifier.NotifyChange(ctx, fmt.Sprintf("Product added: %s (%s)", created.Name, created.Price.StringFixed(2)))
	return created, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id int64, in ProductInput) (models.Product, error) {
	p, err := a.products.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	p.Price = in.Price
	p.Category = categoryOrDefault(in.Category)
	if in.Image != nil && in.Image.Filename != "" {
		p.ImagePath = a.images.Resolve(ctx, in.Image, p.ImagePath)
	} else if p.ImagePath == "" {
		p.ImagePath = models.PlaceholderImage
	}

	if err := a.products.UpdateProduct(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	a.log.Info().Int64("product_id", p.ID).Msg("product updated")
	a.notifier.NotifyChange(ctx, fmt.Sprintf("Product updated: %s", p.Name))
	return p, nil
}

// DeleteProduct removes a product and returns what was removed.
func (a *Admin) DeleteProduct(ctx context.Context, id int64) (models.Product, error) {
	p, err := a.products.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	if err := a.products.DeleteProduct(ctx, id); err != nil {
		return models.Product{}, fmt.Errorf("delete product %d: %w", id, err)
	}
	a.log.Info().Int64("product_id", id).Msg("product deleted")
	a.notifier.NotifyChange(ctx, fmt.Sprintf("Product deleted: %s", p.Name))
	return p, nil
}

func (a *Admin) CreateCategory(ctx context.Context, in CategoryInput) (models.Category, error) {
	if a.categories == nil {
		return models.Category{}, ErrUnsupported
	}
	c, err := normalizeCategory(in)
	if err != nil {
		return models.Category{}, err
	}
	created, err := a.categories.CreateCategory(ctx, c)
	if err != nil {
		return models.Category{}, fmt.Errorf("create category: %w", err)
	}
	a.log.Info().Int64("category_id", created.ID).Str("name", created.Name).Msg("category created")
	a.notifier.NotifyChange(ctx, fmt.Sprintf("Category added: %s", created.Name))
	return created, nil
}

func (a *Admin) UpdateCategory(ctx context.Context, in CategoryInput) (models.Category, error) {
	if a.categories == nil {
		return models.Category{}, ErrUnsupported
	}
	c, err := normalizeCategory(in)
	if err != nil {
		return models.Category{}, err
	}
	c.ID = in.ID
	if err := a.categories.UpdateCategory(ctx, c); err != nil {
		return models.Category{}, fmt.Errorf("update category %d: %w", in.ID, err)
	}
	a.log.Info().Int64("category_id", c.ID).Msg("category updated")
	a.notifier.NotifyChange(ctx, fmt.Sprintf("Category updated: %s", c.Name))
	return c, nil
}

// DeleteCategory removes a category. Products that reference it are left as
// they are and show up as uncategorized on the next menu build.
func (a *Admin) DeleteCategory(ctx context.Context, id int64) error {
	if a.categories == nil {
		return ErrUnsupported
	}
	if err := a.categories.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	a.log.Info().Int64("category_id", id).Msg("category deleted")
	a.notifier.NotifyChange(ctx, fmt.Sprintf("Category #%d deleted", id))
	return nil
}

func normalizeCategory(in CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Category{}, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if name == models.Uncategorized {
		return models.Category{}, fmt.Errorf("%w: %q is reserved", ErrInvalidInput, name)
	}
	return models.Category{Name: name, SortOrder: in.SortOrder}, nil
}

func categoryOrDefault(category string) string {
	if category == "" {
		return models.Uncategorized
	}
	return category
}
