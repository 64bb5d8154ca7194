package db

import (
	"context"
	"errors"
	"fmt"

	"food-menu/models"
	"food-menu/services"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// Store keeps products and categories in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var (
	_ services.ProductStore  = (*Store)(nil)
	_ services.CategoryStore = (*Store)(nil)
)

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price::text, description, category, image_path FROM products
		ORDER BY name, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, price::text, description, category, image_path FROM products
		WHERE id = $1`,
		id,
	)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, services.ErrNotFound
	}
	return p, err
}

func (s *Store) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO products (name, price, description, category, image_path)
		VALUES ($1, $2::numeric, $3, $4, $5)
		RETURNING id`,
		p.Name, p.Price.String(), p.Description, p.Category, p.ImagePath,
	).Scan(&p.ID)
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p models.Product) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, price = $3::numeric, description = $4, category = $5, image_path = $6
		WHERE id = $1`,
		p.ID, p.Name, p.Price.String(), p.Description, p.Category, p.ImagePath,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, sort_order FROM categories
		ORDER BY sort_order, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *Store) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (name, sort_order) VALUES ($1, $2)
		RETURNING id`,
		c.Name, c.SortOrder,
	).Scan(&c.ID)
	if err != nil {
		return models.Category{}, mapCategoryErr(c.Name, err)
	}
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c models.Category) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE categories SET name = $2, sort_order = $3 WHERE id = $1`,
		c.ID, c.Name, c.SortOrder,
	)
	if err != nil {
		return mapCategoryErr(c.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return services.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	var price string
	if err := row.Scan(&p.ID, &p.Name, &price, &p.Description, &p.Category, &p.ImagePath); err != nil {
		return models.Product{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %d price %q: %w", p.ID, price, err)
	}
	p.Price = d
	return p, nil
}

func mapCategoryErr(name string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: category %q already exists", services.ErrInvalidInput, name)
	}
	return err
}
