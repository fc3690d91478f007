package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrOrderNotPaid is returned by MarkDelivered when the paid-before-delivery
// policy is active and the order has not been paid yet.
var ErrOrderNotPaid = errors.New("order has not been paid")

// Address represents a shipping address captured at checkout.
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipcode" json:"zipcode"`
}

// OrderItem is a line item frozen at checkout time. Name, price and image
// are snapshots of the product at the moment the order was placed.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"qty"`
	Price     float64            `bson:"price" json:"price"`
	ImageURL  string             `bson:"image_url" json:"imageUrl"`
}

// Order represents a completed checkout. Lifecycle state is carried by the
// two one-way booleans IsPaid and IsDelivered; the human-readable status
// label is derived, never stored.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	OrderItems      []OrderItem        `bson:"order_items" json:"orderItems"`
	ShippingAddress Address            `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	CouponCode      string             `bson:"coupon_code,omitempty" json:"couponCode,omitempty"`

	ItemsPrice    float64 `bson:"items_price" json:"itemsPrice"`
	DiscountPrice float64 `bson:"discount_price" json:"discountPrice"`
	TaxPrice      float64 `bson:"tax_price" json:"taxPrice"`
	ShippingPrice float64 `bson:"shipping_price" json:"shippingPrice"`
	TotalPrice    float64 `bson:"total_price" json:"totalPrice"`

	PaymentResult *PaymentResult `bson:"payment_result,omitempty" json:"paymentResult,omitempty"`

	IsPaid      bool       `bson:"is_paid" json:"isPaid"`
	PaidAt      *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	IsDelivered bool       `bson:"is_delivered" json:"isDelivered"`
	DeliveredAt *time.Time `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`

	// Status is derived from the booleans and exposed in API responses.
	Status string `bson:"-" json:"status,omitempty"`
}

// MarkPaid flips the order to paid. The transition is one-way: an already
// paid order keeps its original PaidAt.
func (o *Order) MarkPaid(now time.Time) {
	if o.IsPaid {
		return
	}
	o.IsPaid = true
	o.PaidAt = &now
}

// MarkDelivered flips the order to delivered. When requirePaid is set, an
// unpaid order is rejected with ErrOrderNotPaid. The transition is one-way.
func (o *Order) MarkDelivered(now time.Time, requirePaid bool) error {
	if requirePaid && !o.IsPaid {
		return ErrOrderNotPaid
	}
	if o.IsDelivered {
		return nil
	}
	o.IsDelivered = true
	o.DeliveredAt = &now
	return nil
}

// StatusLabel derives the human-readable order status from the lifecycle
// flags.
func (o *Order) StatusLabel() string {
	switch {
	case o.IsDelivered:
		return "Delivered"
	case o.IsPaid:
		return "Processing"
	default:
		return "Pending Payment"
	}
}

// SyncStatus fills the derived Status field before encoding a response.
func (o *Order) SyncStatus() {
	o.Status = o.StatusLabel()
}
