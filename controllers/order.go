package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"visionx-api/middleware"
	"visionx-api/models"
	"visionx-api/pricing"
	"visionx-api/utils"
)

// OrderController handles order-related requests.
type OrderController struct {
	OrderCollection   *mongo.Collection
	ProductCollection *mongo.Collection
	Pricer            *pricing.Pricer
	EmailService      *utils.EmailService
	RequirePaid       bool
}

// NewOrderController creates a new OrderController.
func NewOrderController(client *mongo.Client, dbName string, pricer *pricing.Pricer, emailService *utils.EmailService, requirePaid bool) *OrderController {
	db := client.Database(dbName)
	return &OrderController{
		OrderCollection:   db.Collection("orders"),
		ProductCollection: db.Collection("products"),
		Pricer:            pricer,
		EmailService:      emailService,
		RequirePaid:       requirePaid,
	}
}

// createOrderRequest is the checkout payload. Prices are recomputed from
// the catalog; only product references, quantities, the address and the
// payment method are taken from the client.
type createOrderRequest struct {
	OrderItems      []models.CartItemRef `json:"orderItems"`
	ShippingAddress models.Address       `json:"shippingAddress"`
	PaymentMethod   string               `json:"paymentMethod"`
	CouponCode      string               `json:"couponCode"`
}

// CreateOrder creates a new order from the submitted cart snapshot.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if len(req.OrderItems) == 0 {
		writeError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if req.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, "Please provide a payment method")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Re-price every line from the catalog and check stock.
	orderItems := make([]models.OrderItem, 0, len(req.OrderItems))
	lines := make([]pricing.CartLine, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		var product models.Product
		err := oc.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Product %s not found", item.ProductID.Hex()))
			return
		}

		qty := pricing.ClampQuantity(item.Quantity, product.CountInStock)
		if product.CountInStock < qty {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for product: %s", product.Name))
			return
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  qty,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
		})
		lines = append(lines, pricing.CartLine{
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  qty,
		})
	}

	quote := oc.Pricer.Quote(lines, req.CouponCode)

	// Deduct stock for each line.
	for _, item := range orderItems {
		_, err := oc.ProductCollection.UpdateOne(ctx, bson.M{"_id": item.ProductID}, bson.M{
			"$inc": bson.M{"count_in_stock": -item.Quantity},
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update product stock")
			return
		}
	}

	couponCode := ""
	if quote.CouponValid {
		couponCode = req.CouponCode
	}

	order := models.Order{
		UserID:          user.ID,
		OrderItems:      orderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      couponCode,
		ItemsPrice:      quote.Subtotal,
		DiscountPrice:   quote.Discount,
		TaxPrice:        quote.Tax,
		ShippingPrice:   quote.Shipping,
		TotalPrice:      quote.Total,
		IsPaid:          false,
		IsDelivered:     false,
		CreatedAt:       time.Now(),
	}

	result, err := oc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	go func(email, name string, order models.Order) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, name, order); err != nil {
			log.Error().Err(err).Str("email", email).Msg("failed to send order confirmation")
		}
	}(user.Email, user.Name, order)

	order.SyncStatus()
	writeJSON(w, http.StatusCreated, order)
}

// GetMyOrders retrieves all orders for the authenticated user.
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := oc.OrderCollection.Find(ctx, bson.M{"user_id": user.ID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		writeError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}
	for i := range orders {
		orders[i].SyncStatus()
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetOrderByID retrieves a single order. Accessible to the order's owner
// and to admins.
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.UserID != user.ID && !user.IsAdmin {
		writeError(w, http.StatusForbidden, "Not authorized to view this order")
		return
	}

	order.SyncStatus()
	writeJSON(w, http.StatusOK, order)
}

// PayOrder marks an order as paid. This is the payment-confirmation path:
// the owner reports a completed payment, optionally with the processor's
// result attached. The transition is one-way.
func (oc *OrderController) PayOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var paymentResult models.PaymentResult
	if r.Body != nil {
		// The payment result body is optional.
		json.NewDecoder(r.Body).Decode(&paymentResult)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.UserID != user.ID && !user.IsAdmin {
		writeError(w, http.StatusForbidden, "Not authorized to pay this order")
		return
	}

	order.MarkPaid(time.Now())
	if paymentResult != (models.PaymentResult{}) {
		order.PaymentResult = &paymentResult
	}

	update := bson.M{"$set": bson.M{
		"is_paid":        order.IsPaid,
		"paid_at":        order.PaidAt,
		"payment_result": order.PaymentResult,
	}}
	if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, update); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update payment status")
		return
	}

	order.SyncStatus()
	writeJSON(w, http.StatusOK, order)
}
