package store

import (
	"sync"

	"github.com/example/storefront-service/internal/domain"
)

// FlowState — состояние потока оформления заказа.
type FlowState string

const (
	FlowIdle       FlowState = "idle"
	FlowFormOpen   FlowState = "form_open"
	FlowValidating FlowState = "validating"
)

// OrderFlow — машина состояний оформления: Idle -> FormOpen ->
// (Validating -> FormOpen при ошибке | Idle при успехе). Отмена из FormOpen
// возвращает в Idle без сохранения частичного черновика.
type OrderFlow struct {
	mu    sync.Mutex
	state FlowState
	draft domain.OrderDraft
}

func NewOrderFlow() *OrderFlow {
	return &OrderFlow{state: FlowIdle}
}

func (f *OrderFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Open — открыть форму заказа; повторное открытие — no-op.
func (f *OrderFlow) Open() {
	f.mu.Lock()
	if f.state == FlowIdle {
		f.state = FlowFormOpen
	}
	f.mu.Unlock()
}

// Cancel — закрыть форму без отправки; черновик не сохраняется.
func (f *OrderFlow) Cancel() {
	f.mu.Lock()
	if f.state == FlowFormOpen {
		f.state = FlowIdle
		f.draft = domain.OrderDraft{}
	}
	f.mu.Unlock()
}

// SetDraft — обновить поля формы; учитывается только в FormOpen.
func (f *OrderFlow) SetDraft(d domain.OrderDraft) {
	f.mu.Lock()
	if f.state == FlowFormOpen {
		f.draft = d
	}
	f.mu.Unlock()
}

// Begin — перейти к валидации; из любого состояния кроме FormOpen — ошибка.
func (f *OrderFlow) Begin() (domain.OrderDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowFormOpen {
		return domain.OrderDraft{}, domain.ErrFormNotOpen
	}
	f.state = FlowValidating
	return f.draft, nil
}

// Fail — вернуть форму на доработку после неудачной валидации или отправки.
func (f *OrderFlow) Fail() {
	f.mu.Lock()
	if f.state == FlowValidating {
		f.state = FlowFormOpen
	}
	f.mu.Unlock()
}

// Complete — успешная отправка: поток в Idle, поля формы очищены.
func (f *OrderFlow) Complete() {
	f.mu.Lock()
	f.state = FlowIdle
	f.draft = domain.OrderDraft{}
	f.mu.Unlock()
}
