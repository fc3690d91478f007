// Package pricing computes cart totals: subtotal, coupon discount, tax,
// shipping and total. Coupon codes are validated here, server-side, so the
// client is never trusted with discount math.
package pricing

import (
	"math"
	"strings"
)

// MaxQuantityPerLine is the per-line quantity ceiling regardless of stock.
const MaxQuantityPerLine = 10

// coupons maps lowercase coupon codes to their percentage discount.
// A static table: no expiry, no usage tracking.
var coupons = map[string]float64{
	"vision10": 10,
	"vision20": 20,
}

// CartLine is a priced cart line: unit price comes from the catalog, not
// from the client.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"qty"`
}

// Quote is the computed price breakdown for a cart.
type Quote struct {
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	Tax           float64 `json:"tax"`
	Shipping      float64 `json:"shipping"`
	Total         float64 `json:"total"`
	CouponValid   bool    `json:"couponValid"`
	CouponPercent float64 `json:"couponPercent"`
}

// Pricer computes quotes with a fixed tax rate and flat shipping rate.
type Pricer struct {
	TaxRate          float64
	ShippingFlatRate float64
}

// NewPricer creates a Pricer with the given tax and flat shipping rates.
func NewPricer(taxRate, shippingFlatRate float64) *Pricer {
	return &Pricer{
		TaxRate:          taxRate,
		ShippingFlatRate: shippingFlatRate,
	}
}

// CouponPercent looks up a coupon code, case-insensitively. Unknown codes
// return (0, false); an empty code is simply "no coupon".
func CouponPercent(code string) (float64, bool) {
	percent, ok := coupons[strings.ToLower(strings.TrimSpace(code))]
	return percent, ok
}

// ClampQuantity clamps a requested quantity to [1, min(10, countInStock)].
// Requests at or below zero clamp up to 1; removal of a line is a separate,
// explicit operation. A product with no stock still yields 1 so the line
// survives; the checkout stock check is the authority on availability.
func ClampQuantity(requested, countInStock int) int {
	ceiling := MaxQuantityPerLine
	if countInStock > 0 && countInStock < ceiling {
		ceiling = countInStock
	}
	if requested < 1 {
		return 1
	}
	if requested > ceiling {
		return ceiling
	}
	return requested
}

// Quote computes the price breakdown for the given lines and optional
// coupon code. An unrecognized code yields CouponValid=false and a zero
// discount; it is a signal, not an error, so the caller can retry.
//
// total = subtotal − discount + tax(subtotal − discount) + shipping, with
// shipping = 0 iff subtotal = 0. Each component is rounded to cents before
// the next is computed, matching the displayed breakdown.
func (p *Pricer) Quote(lines []CartLine, couponCode string) Quote {
	q := Quote{}

	for _, line := range lines {
		q.Subtotal += line.UnitPrice * float64(line.Quantity)
	}
	q.Subtotal = roundCents(q.Subtotal)

	if couponCode != "" {
		if percent, ok := CouponPercent(couponCode); ok {
			q.CouponValid = true
			q.CouponPercent = percent
			q.Discount = roundCents(q.Subtotal * percent / 100)
		}
	}

	q.Tax = roundCents((q.Subtotal - q.Discount) * p.TaxRate)
	if q.Subtotal > 0 {
		q.Shipping = p.ShippingFlatRate
	}
	q.Total = roundCents(q.Subtotal - q.Discount + q.Tax + q.Shipping)

	return q
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
