package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus — статус заказа после передачи внешнему сервису.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderDraft — данные формы заказа до отправки.
type OrderDraft struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Comment string `json:"comment,omitempty"`
}

// Validate — чистая проверка обязательных полей; комментарий не обязателен.
func (d OrderDraft) Validate() error {
	verr := &ValidationError{
		MissingPhone:   strings.TrimSpace(d.Phone) == "",
		MissingAddress: strings.TrimSpace(d.Address) == "",
	}
	if verr.MissingPhone || verr.MissingAddress {
		return verr
	}
	return nil
}

// SubmissionItem — позиция заказа в payload отправки.
type SubmissionItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// Submission — неизменяемый payload, передаваемый внешнему сервису заказов.
// Жизненным циклом заказа после передачи ядро не управляет.
type Submission struct {
	ID         string           `json:"id"`
	Items      []SubmissionItem `json:"items"`
	Total      int64            `json:"total"`
	Currency   string           `json:"currency"`
	Status     OrderStatus      `json:"status"`
	Phone      string           `json:"phone"`
	Address    string           `json:"address"`
	Comment    string           `json:"comment,omitempty"`
	CapturedAt time.Time        `json:"captured_at"`
}

// BuildSubmission — собрать payload из прошедшего валидацию черновика и
// среза корзины. Позиции копируются, живое состояние корзины не удерживается.
func BuildSubmission(d OrderDraft, snap CartSnapshot) (Submission, error) {
	if err := d.Validate(); err != nil {
		return Submission{}, err
	}
	if snap.Empty() {
		return Submission{}, ErrEmptyCart
	}
	items := make([]SubmissionItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, SubmissionItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Product.Price,
			Subtotal:  it.Subtotal(),
		})
	}
	return Submission{
		ID:         uuid.NewString(),
		Items:      items,
		Total:      snap.TotalAmount,
		Currency:   snap.Currency,
		Status:     OrderStatusPending,
		Phone:      strings.TrimSpace(d.Phone),
		Address:    strings.TrimSpace(d.Address),
		Comment:    strings.TrimSpace(d.Comment),
		CapturedAt: time.Now().UTC(),
	}, nil
}
