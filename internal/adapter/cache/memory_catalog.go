package cache

import (
	"sync"

	"github.com/example/storefront-service/internal/domain"
)

// MemoryCatalog — снапшот каталога в памяти. Пока Replace не вызван,
// каталог считается пустым, а не "ожидающим загрузки".
type MemoryCatalog struct {
	mu         sync.RWMutex
	products   []domain.Product
	index      map[int64]domain.Product
	categories []domain.Category
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{index: make(map[int64]domain.Product)}
}

func (c *MemoryCatalog) Replace(products []domain.Product, categories []domain.Category) {
	index := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	c.mu.Lock()
	c.products = products
	c.index = index
	c.categories = categories
	c.mu.Unlock()
}

func (c *MemoryCatalog) Product(id int64) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.index[id]
	return p, ok
}

// Products — товары в порядке источника; копия, безопасная для фильтрации.
func (c *MemoryCatalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *MemoryCatalog) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

var _ domain.CatalogCache = (*MemoryCatalog)(nil)
