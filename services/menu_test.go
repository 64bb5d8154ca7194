package services

import (
	"context"
	"errors"
	"testing"

	"food-menu/models"

	"github.com/google/go-cmp/cmp"
)

func product(id int64, category string) models.Product {
	return models.Product{ID: id, Name: "p", Category: category}
}

func TestBuildMenuView_Scenarios(t *testing.T) {
	p1, p2, p3 := product(1, "Drinks"), product(2, "Snacks"), product(3, "Unknown")

	tests := []struct {
		name     string
		cats     []string
		products []models.Product
		want     models.MenuView
	}{
		{
			name:     "known and unknown categories",
			cats:     []string{"Drinks", "Snacks"},
			products: []models.Product{p1, p2, p3},
			want: models.MenuView{
				{Category: "Drinks", Products: []models.Product{p1}},
				{Category: "Snacks", Products: []models.Product{p2}},
				{Category: models.Uncategorized, Products: []models.Product{p3}},
			},
		},
		{
			name:     "no categories",
			cats:     []string{},
			products: []models.Product{product(1, "X")},
			want: models.MenuView{
				{Category: models.Uncategorized, Products: []models.Product{product(1, "X")}},
			},
		},
		{
			name:     "no products",
			cats:     []string{"A"},
			products: nil,
			want:     models.MenuView{},
		},
		{
			name:     "empty category string",
			cats:     []string{"A"},
			products: []models.Product{product(1, "")},
			want: models.MenuView{
				{Category: models.Uncategorized, Products: []models.Product{product(1, "")}},
			},
		},
		{
			name:     "case sensitive match",
			cats:     []string{"Drinks"},
			products: []models.Product{product(1, "drinks")},
			want: models.MenuView{
				{Category: models.Uncategorized, Products: []models.Product{product(1, "drinks")}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildMenuView(tt.cats, tt.products)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildMenuView() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildMenuView_EveryProductInExactlyOneSection(t *testing.T) {
	cats := []string{"Fries", "Drinks", "Fries", models.Uncategorized, "Indomie"}
	products := []models.Product{
		product(1, "Drinks"),
		product(2, "Fries"),
		product(3, "Gone"),
		product(4, models.Uncategorized),
		product(5, "Drinks"),
		product(6, ""),
	}

	view := BuildMenuView(cats, products)

	seen := map[int64]int{}
	for _, s := range view {
		if len(s.Products) == 0 {
			t.Errorf("section %q is empty and should have been dropped", s.Category)
		}
		for _, p := range s.Products {
			seen[p.ID]++
		}
	}
	for _, p := range products {
		if seen[p.ID] != 1 {
			t.Errorf("product %d appears %d times, want 1", p.ID, seen[p.ID])
		}
	}
	if view.Count() != len(products) {
		t.Errorf("Count = %d, want %d", view.Count(), len(products))
	}
}

func TestBuildMenuView_OrderFollowsCategoriesThenUncategorized(t *testing.T) {
	cats := []string{"C", "A", "B"}
	products := []models.Product{product(1, "B"), product(2, "zzz"), product(3, "C")}

	view := BuildMenuView(cats, products)

	if diff := cmp.Diff([]string{"C", "B", models.Uncategorized}, view.Categories()); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMenuView_KeepsProductOrderWithinSection(t *testing.T) {
	products := []models.Product{
		{ID: 3, Name: "Cola", Category: "Drinks"},
		{ID: 1, Name: "Apple juice", Category: "Drinks"},
		{ID: 2, Name: "Water", Category: "Drinks"},
	}
	drinks, ok := BuildMenuView([]string{"Drinks"}, products).Section("Drinks")
	if !ok || len(drinks) != 3 {
		t.Fatalf("Drinks section = %v, %v", drinks, ok)
	}
	if got := []int64{drinks[0].ID, drinks[1].ID, drinks[2].ID}; !cmp.Equal(got, []int64{3, 1, 2}) {
		t.Errorf("ids = %v, want store order [3 1 2]", got)
	}
}

func TestBuildMenuView_IdempotentAndDoesNotMutateInput(t *testing.T) {
	cats := []string{"Drinks", "Snacks"}
	products := []models.Product{product(1, "Snacks"), product(2, "Other"), product(3, "Drinks")}
	catsBefore := append([]string(nil), cats...)
	productsBefore := append([]models.Product(nil), products...)

	first := BuildMenuView(cats, products)
	second := BuildMenuView(cats, products)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second build differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(catsBefore, cats); diff != "" {
		t.Errorf("categories mutated (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(productsBefore, products); diff != "" {
		t.Errorf("products mutated (-before +after):\n%s", diff)
	}
}

func TestGroupProducts_KeepsEmptySections(t *testing.T) {
	view := GroupProducts([]string{"A", "B"}, []models.Product{product(1, "B")})

	if diff := cmp.Diff([]string{"A", "B", models.Uncategorized}, view.Categories()); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	if a, _ := view.Section("A"); len(a) != 0 {
		t.Errorf("section A = %v, want empty", a)
	}
	if n := len(view.NonEmpty()); n != 1 {
		t.Errorf("NonEmpty has %d sections, want 1", n)
	}
}

type fakeProducts struct {
	items   []models.Product
	listErr error
}

func (f *fakeProducts) ListProducts(context.Context) ([]models.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Product(nil), f.items...), nil
}

func (f *fakeProducts) GetProduct(_ context.Context, id int64) (models.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (f *fakeProducts) CreateProduct(_ context.Context, p models.Product) (models.Product, error) {
	var max int64
	for _, x := range f.items {
		if x.ID > max {
			max = x.ID
		}
	}
	p.ID = max + 1
	f.items = append(f.items, p)
	return p, nil
}

func (f *fakeProducts) UpdateProduct(_ context.Context, p models.Product) error {
	for i := range f.items {
		if f.items[i].ID == p.ID {
			f.items[i] = p
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeProducts) DeleteProduct(_ context.Context, id int64) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestMenu_View(t *testing.T) {
	store := &fakeProducts{items: []models.Product{product(1, "Drinks"), product(2, "Nope")}}
	menu := NewMenu(FixedCategories{"Drinks", "Snacks"}, store)

	view, err := menu.View(context.Background())
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if diff := cmp.Diff([]string{"Drinks", models.Uncategorized}, view.Categories()); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestMenu_View_ProductStoreFailure(t *testing.T) {
	menu := NewMenu(FixedCategories{"Drinks"}, &fakeProducts{listErr: errors.New("connection refused")})

	view, err := menu.View(context.Background())
	if err == nil {
		t.Fatal("expected error from failing product store")
	}
	if len(view) != 0 {
		t.Errorf("view = %v, want empty", view)
	}
}

func TestMenu_Dashboard_FixedCategories(t *testing.T) {
	store := &fakeProducts{items: []models.Product{product(1, "A"), product(2, "A"), product(3, "gone")}}
	menu := NewMenu(FixedCategories{"A", "B"}, store)

	d, err := menu.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(d.Categories) != 2 || d.Categories[1].Name != "B" || d.Categories[1].SortOrder != 1 {
		t.Fatalf("categories = %+v", d.Categories)
	}
	counts := map[string]int{"A": 2, "B": 0, models.Uncategorized: 1}
	for name, want := range counts {
		if got := d.Count(name); got != want {
			t.Errorf("Count(%q) = %d, want %d", name, got, want)
		}
	}
	if len(d.Products) != 3 {
		t.Errorf("products = %d, want 3", len(d.Products))
	}
}

func TestMenu_Dashboard_StoreCategories(t *testing.T) {
	cats := &fakeCategories{items: []models.Category{{ID: 2, Name: "B", SortOrder: 0}, {ID: 1, Name: "A", SortOrder: 5}}}
	menu := NewMenu(StoreCategories{Store: cats}, &fakeProducts{})

	d, err := menu.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(d.Categories) != 2 || d.Categories[0].ID != 2 || d.Categories[1].ID != 1 {
		t.Errorf("categories = %+v, want ids [2 1] by sort order", d.Categories)
	}
}
