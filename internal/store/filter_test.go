package store

import (
	"testing"

	"github.com/example/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []domain.Product {
	phones := &domain.Category{ID: 2, Name: "Telefonlar", IsActive: true}
	bags := &domain.Category{ID: 3, Name: "Sumkalar", IsActive: true}
	return []domain.Product{
		{ID: 1, Name: "Olma telefon", Description: "flagman", Category: phones, Price: 100},
		{ID: 2, Name: "Olma sumka", Description: "teri", Category: bags, Price: 50},
		{ID: 3, Name: "Anor telefon", Description: "byudjet olma-rang", Category: phones, Price: 30},
		{ID: 4, Name: "Ryukzak", Description: "sport", Category: bags, Price: 40},
	}
}

func ids(products []domain.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestVisibleNoFiltersReturnsCatalogInOrder(t *testing.T) {
	f := NewCatalogFilter()
	catalog := catalogFixture()

	visible := f.VisibleProducts(catalog)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(visible))
}

func TestVisibleCategoryFilter(t *testing.T) {
	f := NewCatalogFilter()
	f.SetCategory(domain.OneCategory(2))

	visible := f.VisibleProducts(catalogFixture())
	assert.Equal(t, []int64{1, 3}, ids(visible))
}

func TestVisibleCategoryThenSearch(t *testing.T) {
	f := NewCatalogFilter()
	f.SetCategory(domain.OneCategory(2))
	f.SetSearchText("olma")

	// "olma" matches products 1, 2 and 3 (description); product 2 sits in
	// another category and must never reach the search step
	visible := f.VisibleProducts(catalogFixture())
	assert.Equal(t, []int64{1, 3}, ids(visible))

	f.SetSearchText("sumka")
	visible = f.VisibleProducts(catalogFixture())
	assert.Empty(t, visible)
}

func TestVisibleSearchTrimsAndIgnoresCase(t *testing.T) {
	f := NewCatalogFilter()

	f.SetSearchText("  OLMA  ")
	assert.Equal(t, []int64{1, 2, 3}, ids(f.VisibleProducts(catalogFixture())))

	f.SetSearchText("SPORT")
	assert.Equal(t, []int64{4}, ids(f.VisibleProducts(catalogFixture())))
}

func TestVisibleWhitespaceSearchMeansNoFilter(t *testing.T) {
	f := NewCatalogFilter()
	f.SetSearchText("   \t ")

	assert.Len(t, f.VisibleProducts(catalogFixture()), 4)
}

func TestVisibleEmptyCatalog(t *testing.T) {
	f := NewCatalogFilter()
	f.SetCategory(domain.OneCategory(2))
	f.SetSearchText("olma")

	visible := f.VisibleProducts(nil)
	require.NotNil(t, visible)
	assert.Empty(t, visible)
}

func TestSetCategoryReplacesUnconditionally(t *testing.T) {
	f := NewCatalogFilter()
	f.SetCategory(domain.OneCategory(3))
	f.SetCategory(domain.AllCategories())

	sel, _ := f.State()
	assert.True(t, sel.IsAll())
	assert.Len(t, f.VisibleProducts(catalogFixture()), 4)
}

func TestVisibleIsPure(t *testing.T) {
	catalog := catalogFixture()
	sel := domain.OneCategory(3)

	first := Visible(catalog, sel, "teri")
	second := Visible(catalog, sel, "teri")

	assert.Equal(t, first, second)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(catalog), "input catalog untouched")
}
