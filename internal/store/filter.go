package store

import (
	"strings"
	"sync"

	"github.com/example/storefront-service/internal/domain"
)

// CatalogFilter — состояние фильтра каталога одной сессии: выбранная
// категория и строка поиска. Видимый набор выводится из снапшота каталога
// заново при каждом чтении.
type CatalogFilter struct {
	mu       sync.RWMutex
	selected domain.CategorySelection
	search   string
}

func NewCatalogFilter() *CatalogFilter {
	return &CatalogFilter{selected: domain.AllCategories()}
}

// SetCategory — заменить выбор категории, включая вариант "все".
func (f *CatalogFilter) SetCategory(sel domain.CategorySelection) {
	f.mu.Lock()
	f.selected = sel
	f.mu.Unlock()
}

// SetSearchText — заменить строку поиска; пустая или пробельная строка
// эквивалентна отсутствию фильтра.
func (f *CatalogFilter) SetSearchText(text string) {
	f.mu.Lock()
	f.search = text
	f.mu.Unlock()
}

func (f *CatalogFilter) State() (domain.CategorySelection, string) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.selected, f.search
}

// VisibleProducts — каталог, суженный категорией, затем поиском.
// Порядок входного каталога сохраняется.
func (f *CatalogFilter) VisibleProducts(catalog []domain.Product) []domain.Product {
	sel, search := f.State()
	return Visible(catalog, sel, search)
}

// Visible — чистая функция фильтрации: сначала категория, затем подстрочный
// поиск по имени или описанию без учёта регистра. Пустой каталог даёт
// пустой результат.
func Visible(catalog []domain.Product, sel domain.CategorySelection, search string) []domain.Product {
	out := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if sel.Matches(p) {
			out = append(out, p)
		}
	}
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return out
	}
	matched := out[:0]
	for _, p := range out {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matched = append(matched, p)
		}
	}
	return matched
}
