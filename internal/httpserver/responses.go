package httpserver

import (
	"time"

	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/pricing"
	cartsvc "handcrafted-haven/internal/service/cart"
	ordersvc "handcrafted-haven/internal/service/order"
	productsvc "handcrafted-haven/internal/service/product"
)

// money renders an amount with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func cents(c int64) string {
	return money(decimal.New(c, -2))
}

type productResponse struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"sellerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"isActive"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProduct(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       cents(p.PriceCents),
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProducts(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProduct(p))
	}
	return out
}

type boundsResponse struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

func toBounds(b catalog.Bounds) boundsResponse {
	return boundsResponse{Min: money(b.Min), Max: money(b.Max)}
}

type searchResponse struct {
	Items        []productResponse `json:"items"`
	Page         int               `json:"page"`
	PageSize     int               `json:"pageSize"`
	TotalPages   int               `json:"totalPages"`
	TotalCount   int               `json:"totalCount"`
	Categories   []string          `json:"categories"`
	PriceBounds  boundsResponse    `json:"priceBounds"`
	AppliedPrice boundsResponse    `json:"appliedPrice"`
}

func toSearch(res *productsvc.SearchResult) searchResponse {
	return searchResponse{
		Items:        toProducts(res.Items),
		Page:         res.Page,
		PageSize:     res.PageSize,
		TotalPages:   res.TotalPages,
		TotalCount:   res.TotalCount,
		Categories:   res.Categories,
		PriceBounds:  toBounds(res.Bounds),
		AppliedPrice: toBounds(res.Applied),
	}
}

type cartLineResponse struct {
	Product   productResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal string          `json:"lineTotal"`
}

type cartResponse struct {
	ID        string             `json:"id"`
	Lines     []cartLineResponse `json:"lines"`
	ItemCount int                `json:"itemCount"`
	Subtotal  string             `json:"subtotal"`
	Shipping  string             `json:"shipping"`
	Tax       string             `json:"tax"`
	Total     string             `json:"total"`
}

func toCart(q *cartsvc.Quote) cartResponse {
	t := q.Totals.Rounded()
	resp := cartResponse{
		ID:        q.Cart.ID,
		Lines:     make([]cartLineResponse, 0, len(q.Cart.Lines)),
		ItemCount: q.Cart.ItemCount(),
		Subtotal:  money(t.Subtotal),
		Shipping:  money(t.Shipping),
		Tax:       money(t.Tax),
		Total:     money(t.Total),
	}
	for _, l := range q.Cart.Lines {
		resp.Lines = append(resp.Lines, cartLineResponse{
			Product:   toProduct(l.Product),
			Quantity:  l.Quantity,
			LineTotal: money(l.Product.Price().Mul(decimal.NewFromInt(int64(l.Quantity)))),
		})
	}
	return resp
}

type orderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

func toOrderItems(items []domain.OrderLineItem) []orderItemResponse {
	out := make([]orderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, orderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			Quantity:  it.Quantity,
			UnitPrice: money(it.UnitPrice()),
			LineTotal: money(it.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity)))),
		})
	}
	return out
}

type orderResponse struct {
	ID              string                 `json:"id"`
	BuyerID         string                 `json:"buyerId"`
	CustomerName    string                 `json:"customerName"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Status          domain.OrderStatus     `json:"status"`
	Items           []orderItemResponse    `json:"items"`
	Subtotal        string                 `json:"subtotal"`
	Tax             string                 `json:"tax"`
	Shipping        string                 `json:"shipping"`
	Total           string                 `json:"total"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func toOrder(o domain.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		BuyerID:         o.BuyerID,
		CustomerName:    o.CustomerName,
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		Items:           toOrderItems(o.Items),
		Subtotal:        cents(o.SubtotalCents),
		Tax:             cents(o.TaxCents),
		Shipping:        cents(o.ShippingCents),
		Total:           cents(o.TotalCents),
		CreatedAt:       o.CreatedAt,
	}
}

func toOrders(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return out
}

// sellerOrderResponse carries only the seller's own items. Total is their
// subtotal; the order's tax and shipping stay with the buyer.
type sellerOrderResponse struct {
	ID              string                 `json:"id"`
	CustomerName    string                 `json:"customerName"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Status          domain.OrderStatus     `json:"status"`
	Items           []orderItemResponse    `json:"items"`
	Total           string                 `json:"total"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func toSellerOrder(v pricing.SellerOrderView) sellerOrderResponse {
	return sellerOrderResponse{
		ID:              v.Order.ID,
		CustomerName:    v.Order.CustomerName,
		ShippingAddress: v.Order.ShippingAddress,
		Status:          v.Order.Status,
		Items:           toOrderItems(v.Items),
		Total:           money(v.Total),
		CreatedAt:       v.Order.CreatedAt,
	}
}

func toSellerOrders(views []pricing.SellerOrderView) []sellerOrderResponse {
	out := make([]sellerOrderResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toSellerOrder(v))
	}
	return out
}

type dashboardResponse struct {
	ProductCount       int    `json:"productCount"`
	ActiveProductCount int    `json:"activeProductCount"`
	OrderCount         int    `json:"orderCount"`
	PendingCount       int    `json:"pendingCount"`
	Revenue            string `json:"revenue"`
}

func toDashboard(d *ordersvc.Dashboard) dashboardResponse {
	return dashboardResponse{
		ProductCount:       d.ProductCount,
		ActiveProductCount: d.ActiveProductCount,
		OrderCount:         d.OrderCount,
		PendingCount:       d.PendingCount,
		Revenue:            money(d.Revenue.Round(2)),
	}
}
