// Package adapter turns loosely typed legacy JSON into domain records.
//
// Legacy exports mix snake_case and camelCase keys and encode numbers as
// either JSON numbers or strings. Everything here is resolved once at the
// boundary so the rest of the service only sees typed domain values.
package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/domain"
)

type fields map[string]json.RawMessage

func decodeObject(raw json.RawMessage) (fields, error) {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, domain.Invalidf("expected JSON object: %v", err)
	}
	if f == nil {
		return nil, domain.Invalidf("expected JSON object, got null")
	}
	return f, nil
}

// lookup returns the first present, non-null value among keys.
func (f fields) lookup(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := f[k]
		if ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

func (f fields) str(keys ...string) (string, error) {
	v, ok := f.lookup(keys...)
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	// ids are sometimes numeric in old exports
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), nil
	}
	return "", domain.Invalidf("field %s: expected string", keys[0])
}

func (f fields) money(keys ...string) (decimal.Decimal, bool, error) {
	v, ok := f.lookup(keys...)
	if !ok {
		return decimal.Zero, false, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(bytes.TrimSpace(v)); err != nil {
		return decimal.Zero, false, domain.Invalidf("field %s: expected amount, got %s", keys[0], v)
	}
	return d, true, nil
}

func (f fields) integer(keys ...string) (int, bool, error) {
	v, ok := f.lookup(keys...)
	if !ok {
		return 0, false, nil
	}
	var n int
	if err := json.Unmarshal(v, &n); err == nil {
		return n, true, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil {
			return n, true, nil
		}
	}
	return 0, false, domain.Invalidf("field %s: expected integer, got %s", keys[0], v)
}

func (f fields) boolean(def bool, keys ...string) (bool, error) {
	v, ok := f.lookup(keys...)
	if !ok {
		return def, nil
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, nil
		}
	}
	return false, domain.Invalidf("field %s: expected boolean, got %s", keys[0], v)
}

func (f fields) timestamp(keys ...string) (time.Time, error) {
	s, err := f.str(keys...)
	if err != nil || s == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.Invalidf("field %s: expected RFC3339 time, got %q", keys[0], s)
	}
	return t.UTC(), nil
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// NormalizeProduct decodes one legacy product record.
func NormalizeProduct(raw json.RawMessage) (domain.Product, error) {
	f, err := decodeObject(raw)
	if err != nil {
		return domain.Product{}, err
	}
	var p domain.Product
	if p.ID, err = f.str("id", "product_id", "productId"); err != nil {
		return domain.Product{}, err
	}
	if p.SellerID, err = f.str("seller_id", "sellerId"); err != nil {
		return domain.Product{}, err
	}
	if p.Name, err = f.str("name"); err != nil {
		return domain.Product{}, err
	}
	if p.Name == "" {
		return domain.Product{}, domain.Invalidf("field name: required")
	}
	if p.Description, err = f.str("description"); err != nil {
		return domain.Product{}, err
	}
	if p.Category, err = f.str("category"); err != nil {
		return domain.Product{}, err
	}
	if p.ImageURL, err = f.str("image_url", "imageUrl"); err != nil {
		return domain.Product{}, err
	}
	price, ok, err := f.money("price", "price_cents", "priceCents")
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, domain.Invalidf("field price: required")
	}
	if _, inUnits := f.lookup("price"); inUnits {
		p.PriceCents = domain.CentsFromDecimal(price)
	} else {
		p.PriceCents = price.Round(0).IntPart()
	}
	if p.Stock, _, err = f.integer("stock", "stock_quantity", "stockQuantity"); err != nil {
		return domain.Product{}, err
	}
	if p.IsActive, err = f.boolean(true, "is_active", "isActive"); err != nil {
		return domain.Product{}, err
	}
	if p.CreatedAt, err = f.timestamp("created_at", "createdAt"); err != nil {
		return domain.Product{}, err
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// NormalizeProducts decodes a JSON array of legacy product records.
func NormalizeProducts(raw json.RawMessage) ([]domain.Product, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(items))
	for i, item := range items {
		p, err := NormalizeProduct(item)
		if err != nil {
			return nil, wrapIndex(i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// NormalizeOrder decodes one legacy order record.
func NormalizeOrder(raw json.RawMessage) (domain.Order, error) {
	f, err := decodeObject(raw)
	if err != nil {
		return domain.Order{}, err
	}
	var o domain.Order
	if o.ID, err = f.str("id", "order_id", "orderId"); err != nil {
		return domain.Order{}, err
	}
	if o.BuyerID, err = f.str("buyer_id", "buyerId", "user_id", "userId"); err != nil {
		return domain.Order{}, err
	}
	if o.CustomerName, err = f.str("customer_name", "customerName"); err != nil {
		return domain.Order{}, err
	}
	if o.CreatedAt, err = f.timestamp("created_at", "createdAt", "order_date", "orderDate"); err != nil {
		return domain.Order{}, err
	}

	statusRaw, err := f.str("status")
	if err != nil {
		return domain.Order{}, err
	}
	if statusRaw == "" {
		o.Status = domain.OrderPending
	} else if o.Status, err = domain.ParseOrderStatus(statusRaw); err != nil {
		return domain.Order{}, err
	}

	if v, ok := f.lookup("shipping_address", "shippingAddress"); ok {
		if o.ShippingAddress, err = normalizeAddress(v); err != nil {
			return domain.Order{}, err
		}
	}
	if o.CustomerName == "" {
		o.CustomerName = o.ShippingAddress.FullName
	}

	if v, ok := f.lookup("items", "order_items", "orderItems"); ok {
		rawItems, err := decodeArray(v)
		if err != nil {
			return domain.Order{}, err
		}
		for i, item := range rawItems {
			li, err := normalizeLineItem(item)
			if err != nil {
				return domain.Order{}, wrapIndex(i, err)
			}
			o.Items = append(o.Items, li)
		}
	}

	if err := normalizeOrderMoney(f, &o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// NormalizeOrders decodes a JSON array of legacy order records.
func NormalizeOrders(raw json.RawMessage) ([]domain.Order, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(items))
	for i, item := range items {
		o, err := NormalizeOrder(item)
		if err != nil {
			return nil, wrapIndex(i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func normalizeOrderMoney(f fields, o *domain.Order) error {
	subtotal, hasSubtotal, err := f.money("subtotal", "sub_total", "subTotal")
	if err != nil {
		return err
	}
	if !hasSubtotal {
		subtotal = decimal.Zero
		for _, it := range o.Items {
			subtotal = subtotal.Add(it.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	tax, _, err := f.money("tax")
	if err != nil {
		return err
	}
	shipping, _, err := f.money("shipping", "shipping_cost", "shippingCost")
	if err != nil {
		return err
	}
	o.SubtotalCents = domain.CentsFromDecimal(subtotal)
	o.TaxCents = domain.CentsFromDecimal(tax)
	o.ShippingCents = domain.CentsFromDecimal(shipping)
	o.TotalCents = o.SubtotalCents + o.TaxCents + o.ShippingCents

	total, hasTotal, err := f.money("total", "total_amount", "totalAmount")
	if err != nil {
		return err
	}
	if hasTotal && domain.CentsFromDecimal(total) != o.TotalCents {
		return domain.Invalidf("field total: %s does not equal subtotal+tax+shipping %s",
			total.StringFixed(2), decimal.New(o.TotalCents, -2).StringFixed(2))
	}
	if o.SubtotalCents < 0 || o.TaxCents < 0 || o.ShippingCents < 0 {
		return domain.Invalidf("field total: amounts must not be negative")
	}
	return nil
}

func normalizeLineItem(raw json.RawMessage) (domain.OrderLineItem, error) {
	f, err := decodeObject(raw)
	if err != nil {
		return domain.OrderLineItem{}, err
	}
	var li domain.OrderLineItem
	if li.ProductID, err = f.str("product_id", "productId", "id"); err != nil {
		return domain.OrderLineItem{}, err
	}
	if li.Name, err = f.str("name", "product_name", "productName"); err != nil {
		return domain.OrderLineItem{}, err
	}
	if li.ImageURL, err = f.str("image_url", "imageUrl"); err != nil {
		return domain.OrderLineItem{}, err
	}
	qty, ok, err := f.integer("quantity", "qty")
	if err != nil {
		return domain.OrderLineItem{}, err
	}
	if !ok {
		qty = 1
	}
	if qty < 1 {
		return domain.OrderLineItem{}, domain.Invalidf("field quantity: must be at least 1, got %d", qty)
	}
	li.Quantity = qty
	price, ok, err := f.money("unit_price", "unitPrice", "price")
	if err != nil {
		return domain.OrderLineItem{}, err
	}
	if !ok {
		return domain.OrderLineItem{}, domain.Invalidf("field unit_price: required")
	}
	if price.IsNegative() {
		return domain.OrderLineItem{}, domain.Invalidf("field unit_price: must not be negative")
	}
	li.UnitPriceCents = domain.CentsFromDecimal(price)
	return li, nil
}

// normalizeAddress accepts an object or a string holding an encoded object.
func normalizeAddress(raw json.RawMessage) (domain.ShippingAddress, error) {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if strings.TrimSpace(encoded) == "" {
			return domain.ShippingAddress{}, nil
		}
		raw = json.RawMessage(encoded)
	}
	f, err := decodeObject(raw)
	if err != nil {
		return domain.ShippingAddress{}, domain.Invalidf("field shipping_address: %v", err)
	}
	var a domain.ShippingAddress
	for _, step := range []struct {
		dst  *string
		keys []string
	}{
		{&a.FullName, []string{"full_name", "fullName", "name"}},
		{&a.Street, []string{"street", "address", "address1"}},
		{&a.City, []string{"city"}},
		{&a.PostalCode, []string{"postal_code", "postalCode", "zip"}},
		{&a.Country, []string{"country"}},
	} {
		if *step.dst, err = f.str(step.keys...); err != nil {
			return domain.ShippingAddress{}, err
		}
	}
	return a, nil
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, domain.Invalidf("expected JSON array: %v", err)
	}
	return items, nil
}

func wrapIndex(i int, err error) error {
	return fmt.Errorf("record %d: %w", i, err)
}
