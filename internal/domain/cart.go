package domain

// CartItem — пара (товар, количество). Количество всегда >= 1.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) Subtotal() int64 { return i.Product.Price * int64(i.Quantity) }

// CartSnapshot — неизменяемый срез корзины на момент чтения.
type CartSnapshot struct {
	Items       []CartItem `json:"items"`
	TotalAmount int64      `json:"total_amount"`
	ItemCount   int        `json:"item_count"`
	Currency    string     `json:"currency,omitempty"`
}

func (s CartSnapshot) Empty() bool { return len(s.Items) == 0 }
