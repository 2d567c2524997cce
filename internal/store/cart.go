package store

import (
	"sync"

	"github.com/example/storefront-service/internal/domain"
)

// CartStore — владеющее хранилище корзины одной сессии. Позиции хранятся
// в порядке добавления, не больше одной на товар. Мутация и расчёт среза
// выполняются под одной блокировкой, подписчики получают готовый срез.
type CartStore struct {
	mu    sync.RWMutex
	items []domain.CartItem
	subs  []func(domain.CartSnapshot)
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// Subscribe регистрирует обработчик изменений; вызывается после каждой
// мутации с новым срезом, вне блокировки хранилища.
func (c *CartStore) Subscribe(fn func(domain.CartSnapshot)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// AddItem — добавить товар: существующая позиция получает +1 к количеству,
// новая добавляется в конец с количеством 1.
func (c *CartStore) AddItem(p domain.Product) domain.CartSnapshot {
	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, domain.CartItem{Product: p, Quantity: 1})
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return snap
}

// ChangeQuantity — установить количество позиции. Количество <= 0 удаляет
// позицию: инвариант quantity >= 1 обеспечивает само хранилище, а не
// вызывающая сторона. Отсутствующий товар — no-op.
func (c *CartStore) ChangeQuantity(productID int64, quantity int) domain.CartSnapshot {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			changed = c.items[i].Quantity != quantity
			c.items[i].Quantity = quantity
			break
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	if changed {
		c.notify(snap)
	}
	return snap
}

// RemoveItem — удалить позицию; отсутствующий товар — no-op.
func (c *CartStore) RemoveItem(productID int64) domain.CartSnapshot {
	c.mu.Lock()
	removed := false
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			removed = true
			break
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	if removed {
		c.notify(snap)
	}
	return snap
}

// Clear — опустошить корзину после успешной отправки заказа.
func (c *CartStore) Clear() domain.CartSnapshot {
	c.mu.Lock()
	c.items = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return snap
}

func (c *CartStore) Snapshot() domain.CartSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// TotalAmount — сумма price*quantity по всем позициям.
func (c *CartStore) TotalAmount() int64 {
	return c.Snapshot().TotalAmount
}

// ItemCount — точная сумма количеств; усечение для бейджа ("99+") —
// забота презентационного слоя.
func (c *CartStore) ItemCount() int {
	return c.Snapshot().ItemCount
}

func (c *CartStore) snapshotLocked() domain.CartSnapshot {
	snap := domain.CartSnapshot{Items: make([]domain.CartItem, len(c.items))}
	copy(snap.Items, c.items)
	for _, it := range c.items {
		snap.TotalAmount += it.Subtotal()
		snap.ItemCount += it.Quantity
	}
	if len(c.items) > 0 {
		snap.Currency = c.items[0].Product.Currency
	}
	return snap
}

func (c *CartStore) notify(snap domain.CartSnapshot) {
	c.mu.RLock()
	subs := c.subs
	c.mu.RUnlock()
	for _, fn := range subs {
		fn(snap)
	}
}
