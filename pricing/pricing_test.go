package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	pricer := NewPricer(0.07, 12.99)

	tests := []struct {
		name   string
		lines  []CartLine
		coupon string
		want   Quote
	}{
		{
			name: "single item with 10 percent coupon",
			lines: []CartLine{
				{ProductID: "1", Name: "VisionX Pro", UnitPrice: 1299.99, Quantity: 1},
			},
			coupon: "VISION10",
			want: Quote{
				Subtotal:      1299.99,
				Discount:      130.00,
				Tax:           81.90,
				Shipping:      12.99,
				Total:         1264.88,
				CouponValid:   true,
				CouponPercent: 10,
			},
		},
		{
			name: "single item with 20 percent coupon",
			lines: []CartLine{
				{ProductID: "1", UnitPrice: 100.00, Quantity: 2},
			},
			coupon: "vision20",
			want: Quote{
				Subtotal:      200.00,
				Discount:      40.00,
				Tax:           11.20,
				Shipping:      12.99,
				Total:         184.19,
				CouponValid:   true,
				CouponPercent: 20,
			},
		},
		{
			name: "no coupon",
			lines: []CartLine{
				{ProductID: "1", UnitPrice: 50.00, Quantity: 3},
			},
			want: Quote{
				Subtotal: 150.00,
				Tax:      10.50,
				Shipping: 12.99,
				Total:    173.49,
			},
		},
		{
			name: "unrecognized coupon leaves subtotal untouched",
			lines: []CartLine{
				{ProductID: "1", UnitPrice: 150.00, Quantity: 1},
			},
			coupon: "BOGUS50",
			want: Quote{
				Subtotal: 150.00,
				Discount: 0,
				Tax:      10.50,
				Shipping: 12.99,
				Total:    173.49,
			},
		},
		{
			name:  "empty cart has no shipping and no tax",
			lines: nil,
			want:  Quote{},
		},
		{
			name: "multiple lines",
			lines: []CartLine{
				{ProductID: "1", UnitPrice: 1299.99, Quantity: 1},
				{ProductID: "2", UnitPrice: 349.99, Quantity: 2},
			},
			coupon: "vision10",
			want: Quote{
				Subtotal:      1999.97,
				Discount:      200.00,
				Tax:           126.00,
				Shipping:      12.99,
				Total:         1938.96,
				CouponValid:   true,
				CouponPercent: 10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricer.Quote(tt.lines, tt.coupon)

			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 0.001, "subtotal")
			assert.InDelta(t, tt.want.Discount, got.Discount, 0.001, "discount")
			assert.InDelta(t, tt.want.Tax, got.Tax, 0.001, "tax")
			assert.InDelta(t, tt.want.Shipping, got.Shipping, 0.001, "shipping")
			assert.InDelta(t, tt.want.Total, got.Total, 0.001, "total")
			assert.Equal(t, tt.want.CouponValid, got.CouponValid)
			assert.Equal(t, tt.want.CouponPercent, got.CouponPercent)
		})
	}
}

func TestQuoteTotalIdentity(t *testing.T) {
	pricer := NewPricer(0.07, 12.99)
	lines := []CartLine{
		{ProductID: "1", UnitPrice: 19.99, Quantity: 3},
		{ProductID: "2", UnitPrice: 5.49, Quantity: 7},
	}

	q := pricer.Quote(lines, "vision20")

	assert.InDelta(t, q.Subtotal-q.Discount+q.Tax+q.Shipping, q.Total, 0.005)
	assert.Greater(t, q.Shipping, 0.0, "shipping applies when subtotal > 0")
}

func TestCouponPercent(t *testing.T) {
	tests := []struct {
		code        string
		wantPercent float64
		wantOK      bool
	}{
		{"vision10", 10, true},
		{"VISION10", 10, true},
		{"  Vision20 ", 20, true},
		{"vision30", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			percent, ok := CouponPercent(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPercent, percent)
		})
	}
}

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		stock     int
		want      int
	}{
		{"within range", 3, 50, 3},
		{"zero clamps to one", 0, 50, 1},
		{"negative clamps to one", -5, 50, 1},
		{"above ceiling clamps to ten", 15, 50, 10},
		{"stock below ceiling clamps to stock", 8, 4, 4},
		{"exactly at ceiling", 10, 50, 10},
		{"no stock still keeps the line", 3, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampQuantity(tt.requested, tt.stock))
		})
	}
}
