package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// allowed lists the only defined transitions. Shipped and Delivered never go back.
var allowed = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered},
}

// ParseOrderStatus accepts any letter case.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range []OrderStatus{OrderPending, OrderShipped, OrderDelivered, OrderCancelled} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", Invalidf("unknown order status %q", s)
}

// CanTransition reports whether to is reachable from s in one step.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range allowed[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns the new status, or ErrInvalidTransition with s left unchanged.
func (s OrderStatus) Transition(to OrderStatus) (OrderStatus, error) {
	if !s.CanTransition(to) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
	}
	return to, nil
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return len(allowed[s]) == 0
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// IsZero reports whether no field is set.
func (a ShippingAddress) IsZero() bool {
	return a == ShippingAddress{}
}

// OrderLineItem records a purchased product at its purchase-time price.
type OrderLineItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// UnitPrice returns the purchase-time price in currency units.
func (i OrderLineItem) UnitPrice() decimal.Decimal {
	return decimal.New(i.UnitPriceCents, -2)
}

type Order struct {
	ID              string          `json:"id"`
	BuyerID         string          `json:"buyerId"`
	CustomerName    string          `json:"customerName"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Status          OrderStatus     `json:"status"`
	Items           []OrderLineItem `json:"items"`
	SubtotalCents   int64           `json:"subtotalCents"`
	TaxCents        int64           `json:"taxCents"`
	ShippingCents   int64           `json:"shippingCents"`
	TotalCents      int64           `json:"totalCents"`
	CreatedAt       time.Time       `json:"createdAt"`
}
