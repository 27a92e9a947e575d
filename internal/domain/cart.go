package domain

import "time"

type Cart struct {
	ID        string     `json:"id"`
	BuyerID   string     `json:"buyerId"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CartLine pairs a product snapshot with a quantity of at least one.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Line returns the line for productID, if present.
func (c Cart) Line(productID string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.Product.ID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// ItemCount is the sum of line quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}
