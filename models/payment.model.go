package models

// PaymentResult holds the payment processor's confirmation details,
// attached to an order when it is marked paid.
type PaymentResult struct {
	ID           string `bson:"id,omitempty" json:"id,omitempty"`
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
	UpdateTime   string `bson:"update_time,omitempty" json:"updateTime,omitempty"`
	EmailAddress string `bson:"email_address,omitempty" json:"emailAddress,omitempty"`
}
