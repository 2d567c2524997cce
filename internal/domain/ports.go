package domain

import (
	"context"
	"strings"
)

// CatalogSource — порт внешнего источника каталога (постраничный листинг).
type CatalogSource interface {
	ListProducts(ctx context.Context, page, limit int) (CatalogPage, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// CatalogCache — порт снапшота каталога, над которым работает фильтр.
// Пустой снапшот означает "каталог ещё не загружен".
type CatalogCache interface {
	Replace(products []Product, categories []Category)
	Product(id int64) (Product, bool)
	Products() []Product
	Categories() []Category
}

// OrderSubmitter — порт внешнего сервиса приёма заказов. Без повторов;
// наружу отдаётся только успех/неуспех.
type OrderSubmitter interface {
	Submit(ctx context.Context, s Submission) error
}

// Стили и виды уведомлений хост-платформы.
const (
	HapticLight   = "light"
	HapticMedium  = "medium"
	NotifySuccess = "success"
	NotifyWarning = "warning"
)

// HapticBridge — порт тактильной обратной связи хост-платформы.
// Вызывается рядом с мутациями, но не влияет на их результат.
type HapticBridge interface {
	Selection()
	Impact(style string)
	Notify(kind string)
}

// Общие доменные ошибки
var (
	ErrNotFound    = notFoundError("not found")
	ErrEmptyCart   = preconditionError("cart is empty")
	ErrFormNotOpen = preconditionError("order form is not open")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type preconditionError string

func (e preconditionError) Error() string { return string(e) }

// ValidationError — агрегат отсутствующих обязательных полей формы заказа.
type ValidationError struct {
	MissingPhone   bool
	MissingAddress bool
}

func (e *ValidationError) Error() string {
	var missing []string
	if e.MissingPhone {
		missing = append(missing, "phone")
	}
	if e.MissingAddress {
		missing = append(missing, "address")
	}
	return "order draft invalid: missing " + strings.Join(missing, ", ")
}
