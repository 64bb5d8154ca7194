package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Image(t *testing.T) {
	assert.Equal(t, PlaceholderImage, Product{}.Image())
	assert.Equal(t, "/uploads/a.png", Product{ImagePath: "/uploads/a.png"}.Image())
}

func TestMenuView(t *testing.T) {
	v := MenuView{
		{Category: "Fries", Products: []Product{{ID: 1}, {ID: 2}}},
		{Category: "Drinks"},
		{Category: Uncategorized, Products: []Product{{ID: 3}}},
	}

	assert.Equal(t, []string{"Fries", "Drinks", Uncategorized}, v.Categories())
	assert.Equal(t, 3, v.Count())
	assert.Equal(t, []string{"Fries", Uncategorized}, v.NonEmpty().Categories())

	got, ok := v.Section("Drinks")
	assert.True(t, ok)
	assert.Empty(t, got)
	_, ok = v.Section("Soup")
	assert.False(t, ok)
}
