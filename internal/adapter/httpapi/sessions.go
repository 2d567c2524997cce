package httpapi

import (
	"sync"

	"github.com/example/storefront-service/internal/store"
	"github.com/google/uuid"
)

// Session — состояние одной пользовательской сессии: её корзина, фильтр
// каталога и поток оформления заказа. Между сессиями ничего не разделяется.
type Session struct {
	ID     string
	Cart   *store.CartStore
	Filter *store.CatalogFilter
	Flow   *store.OrderFlow
}

type Sessions struct {
	mu sync.RWMutex
	m  map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]*Session)}
}

// Fetch — сессия по идентификатору; пустой или неизвестный id лениво
// создаёт новую.
func (s *Sessions) Fetch(id string) *Session {
	if id != "" {
		s.mu.RLock()
		sess, ok := s.m[id]
		s.mu.RUnlock()
		if ok {
			return sess
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	if sess, ok := s.m[id]; ok {
		return sess
	}
	sess := &Session{
		ID:     id,
		Cart:   store.NewCartStore(),
		Filter: store.NewCatalogFilter(),
		Flow:   store.NewOrderFlow(),
	}
	s.m[id] = sess
	return sess
}
