package pricing

import (
	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/domain"
)

// OwnershipLookup resolves the seller that owns a product.
type OwnershipLookup interface {
	SellerOf(productID string) (string, bool)
}

// Owners maps product id to seller id.
type Owners map[string]string

func (o Owners) SellerOf(productID string) (string, bool) {
	id, ok := o[productID]
	return id, ok
}

func OwnersFromProducts(products []domain.Product) Owners {
	out := make(Owners, len(products))
	for _, p := range products {
		out[p.ID] = p.SellerID
	}
	return out
}

// SellerOrderView is an order narrowed to one seller's line items.
// Total is the filtered subtotal; tax and shipping are not re-split.
type SellerOrderView struct {
	Order    domain.Order           `json:"order"`
	SellerID string                 `json:"sellerId"`
	Items    []domain.OrderLineItem `json:"items"`
	Total    decimal.Decimal        `json:"total"`
}

func SellerView(order domain.Order, sellerID string, owners OwnershipLookup) SellerOrderView {
	view := SellerOrderView{
		Order:    order,
		SellerID: sellerID,
		Items:    []domain.OrderLineItem{},
		Total:    decimal.Zero,
	}
	for _, item := range order.Items {
		owner, ok := owners.SellerOf(item.ProductID)
		if !ok || owner != sellerID {
			continue
		}
		view.Items = append(view.Items, item)
		view.Total = view.Total.Add(item.UnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return view
}

// SellerOrderTotal is the amount shown for order on sellerID's dashboard.
func SellerOrderTotal(order domain.Order, sellerID string, owners OwnershipLookup) decimal.Decimal {
	return SellerView(order, sellerID, owners).Total
}
