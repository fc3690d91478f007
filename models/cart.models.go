package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItemRef is a client-side cart line as submitted for quoting or
// checkout: a product reference plus requested quantity. Prices are never
// trusted from the client; the server re-reads them from the catalog.
type CartItemRef struct {
	ProductID primitive.ObjectID `json:"productId"`
	Quantity  int                `json:"qty"`
}

// QuoteRequest asks the server to price a cart, optionally with a coupon.
type QuoteRequest struct {
	Items      []CartItemRef `json:"items"`
	CouponCode string        `json:"couponCode"`
}
