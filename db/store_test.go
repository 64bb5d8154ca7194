package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"food-menu/config"
	"food-menu/models"
	"food-menu/services"

	"github.com/shopspring/decimal"
)

// testStore connects to DB_URL, applies the schema and empties both tables.
func testStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("DB_URL")
	if url == "" {
		t.Skip("skipping integration test: DB_URL not set")
	}
	ctx := context.Background()
	pool, err := Connect(ctx, config.DBConfig{URL: url})
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	t.Cleanup(pool.Close)

	files, err := filepath.Glob("../migrations/*.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(files)
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			t.Fatalf("apply %s: %v", f, err)
		}
	}
	if _, err := pool.Exec(ctx, `TRUNCATE products, categories RESTART IDENTITY`); err != nil {
		t.Fatal(err)
	}
	return NewStore(pool)
}

func TestStore_Products(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	tea, err := s.CreateProduct(ctx, models.Product{
		Name: "Tea", Price: decimal.RequireFromString("2.50"), Category: "Drinks", ImagePath: models.PlaceholderImage,
	})
	if err != nil {
		t.Fatal(err)
	}
	if tea.ID == 0 {
		t.Fatal("expected generated id")
	}
	if _, err := s.CreateProduct(ctx, models.Product{Name: "Apple juice", Category: "Drinks"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetProduct(ctx, tea.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Price.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("price = %s, want 2.5", got.Price)
	}

	list, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "Apple juice" || list[1].Name != "Tea" {
		t.Fatalf("list = %+v", list)
	}

	got.Description = "hot"
	got.Category = models.Uncategorized
	if err := s.UpdateProduct(ctx, got); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetProduct(ctx, tea.ID)
	if got.Description != "hot" || got.Category != models.Uncategorized {
		t.Errorf("update not applied: %+v", got)
	}

	if err := s.DeleteProduct(ctx, tea.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetProduct(ctx, tea.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("get deleted: err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteProduct(ctx, tea.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("delete twice: err = %v, want ErrNotFound", err)
	}
	if err := s.UpdateProduct(ctx, models.Product{ID: 9999, Name: "x"}); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("update missing: err = %v, want ErrNotFound", err)
	}
}

func TestStore_Categories(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, c := range []models.Category{{Name: "Drinks", SortOrder: 2}, {Name: "Fries", SortOrder: 1}} {
		if _, err := s.CreateCategory(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.CreateCategory(ctx, models.Category{Name: "Fries"}); !errors.Is(err, services.ErrInvalidInput) {
		t.Errorf("duplicate: err = %v, want ErrInvalidInput", err)
	}

	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0].Name != "Fries" || cats[1].Name != "Drinks" {
		t.Fatalf("categories = %+v", cats)
	}

	cats[1].Name = "Beverages"
	if err := s.UpdateCategory(ctx, cats[1]); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCategory(ctx, cats[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCategory(ctx, cats[0].ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("delete twice: err = %v, want ErrNotFound", err)
	}

	resolved := services.StoreCategories{Store: s}.ResolveCategories(ctx)
	if len(resolved) != 1 || resolved[0] != "Beverages" {
		t.Errorf("resolved = %v", resolved)
	}
}
