package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"visionx-api/models"
	"visionx-api/pricing"
)

// CartController prices client-side carts. The cart itself lives in the
// client; the server only quotes it, reading unit prices from the catalog
// and validating coupon codes so the client is never trusted with either.
type CartController struct {
	ProductCollection *mongo.Collection
	Pricer            *pricing.Pricer
}

// NewCartController creates a new CartController.
func NewCartController(client *mongo.Client, dbName string, pricer *pricing.Pricer) *CartController {
	return &CartController{
		ProductCollection: client.Database(dbName).Collection("products"),
		Pricer:            pricer,
	}
}

// quoteResponse echoes the priced, quantity-clamped lines along with the
// computed totals.
type quoteResponse struct {
	Items []pricing.CartLine `json:"items"`
	pricing.Quote
}

// QuoteCart computes subtotal, discount, tax, shipping and total for the
// submitted cart. Quantities are clamped to [1, min(10, countInStock)];
// an unknown coupon code yields couponValid=false, not an error.
func (cc *CartController) QuoteCart(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	lines, err := cc.priceLines(ctx, req.Items)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Items: lines,
		Quote: cc.Pricer.Quote(lines, req.CouponCode),
	})
}

// priceLines resolves cart item references against the catalog, snapshotting
// name and unit price and clamping quantities.
func (cc *CartController) priceLines(ctx context.Context, items []models.CartItemRef) ([]pricing.CartLine, error) {
	lines := make([]pricing.CartLine, 0, len(items))
	for _, item := range items {
		var product models.Product
		err := cc.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil {
			return nil, fmt.Errorf("product %s not found", item.ProductID.Hex())
		}

		lines = append(lines, pricing.CartLine{
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  pricing.ClampQuantity(item.Quantity, product.CountInStock),
		})
	}
	return lines, nil
}
