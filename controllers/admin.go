package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"visionx-api/middleware"
	"visionx-api/models"
)

// AdminController handles the back-office endpoints: dashboard statistics,
// user management and order management.
type AdminController struct {
	UserCollection  *mongo.Collection
	OrderCollection *mongo.Collection
	RequirePaid     bool
}

// NewAdminController creates a new AdminController.
func NewAdminController(client *mongo.Client, dbName string, requirePaid bool) *AdminController {
	db := client.Database(dbName)
	return &AdminController{
		UserCollection:  db.Collection("users"),
		OrderCollection: db.Collection("orders"),
		RequirePaid:     requirePaid,
	}
}

// dashboardStats is the aggregate shape consumed by the admin dashboard.
type dashboardStats struct {
	UserCount     int64          `json:"userCount"`
	OrderCount    int64          `json:"orderCount"`
	TotalRevenue  float64        `json:"totalRevenue"`
	PendingOrders int64          `json:"pendingOrders"`
	NewUsers      int64          `json:"newUsers"`
	RecentOrders  []models.Order `json:"recentOrders"`
}

// Dashboard returns aggregate counts for the admin dashboard.
func (ac *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	stats := dashboardStats{RecentOrders: []models.Order{}}

	userCount, err := ac.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error while retrieving dashboard stats")
		return
	}
	stats.UserCount = userCount

	cursor, err := ac.OrderCollection.Find(ctx, bson.M{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error while retrieving dashboard stats")
		return
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			writeError(w, http.StatusInternalServerError, "Server error while retrieving dashboard stats")
			return
		}
		stats.OrderCount++
		stats.TotalRevenue += order.TotalPrice
	}
	if err := cursor.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error while retrieving dashboard stats")
		return
	}

	pendingOrders, err := ac.OrderCollection.CountDocuments(ctx, bson.M{"is_paid": false})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error while retrieving dashboard stats")
		return
	}
	stats.PendingOrders = pendingOrders

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	newUsers, err := ac.UserCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": thirtyDaysAgo}})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error while retrieving dashboard stats")
		return
	}
	stats.NewUsers = newUsers

	recentCursor, err := ac.OrderCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(4))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error while retrieving dashboard stats")
		return
	}
	defer recentCursor.Close(ctx)

	if err := recentCursor.All(ctx, &stats.RecentOrders); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error while retrieving dashboard stats")
		return
	}
	for i := range stats.RecentOrders {
		stats.RecentOrders[i].SyncStatus()
	}

	writeJSON(w, http.StatusOK, stats)
}

// ListUsers retrieves all users.
func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := ac.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		writeError(w, http.StatusInternalServerError, "Error reading users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetUser retrieves a single user by ID.
func (ac *AdminController) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := ac.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUserRole grants or revokes the admin capability flag.
func (ac *AdminController) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input struct {
		IsAdmin *bool `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IsAdmin == nil {
		writeError(w, http.StatusBadRequest, "Please provide isAdmin")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := ac.UserCollection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_admin": *input.IsAdmin}})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating user")
		return
	}
	if result.MatchedCount == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := ac.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading updated user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUserStatus activates or blocks a user account. A blocked user can
// no longer log in; tokens already issued keep working until expiry since
// there is no server-side revocation list.
func (ac *AdminController) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Status != models.UserStatusActive && input.Status != models.UserStatusBlocked {
		writeError(w, http.StatusBadRequest, "Status must be 'active' or 'blocked'")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := ac.UserCollection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": input.Status}})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating user")
		return
	}
	if result.MatchedCount == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := ac.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading updated user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if id == caller.ID {
		writeError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := ac.UserCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error deleting user")
		return
	}
	if result.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}

// ListUserOrders retrieves all orders placed by a specific user.
func (ac *AdminController) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := ac.OrderCollection.Find(ctx, bson.M{"user_id": id},
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

// ListOrders retrieves all orders.
func (ac *AdminController) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := ac.OrderCollection.Find(ctx, bson.M{},
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

// GetOrder retrieves a single order by ID, regardless of owner.
func (ac *AdminController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := ac.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	order.SyncStatus()
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus marks an order as delivered. The persisted state is the
// boolean pair; any human-readable label in responses is derived from it.
// With the paid-before-delivery policy active, unpaid orders are rejected.
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var input struct {
		IsDelivered *bool `json:"isDelivered"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.IsDelivered == nil {
		writeError(w, http.StatusBadRequest, "Please provide isDelivered")
		return
	}
	if !*input.IsDelivered {
		writeError(w, http.StatusBadRequest, "Delivery cannot be reverted")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := ac.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := order.MarkDelivered(time.Now(), ac.RequirePaid); err != nil {
		if errors.Is(err, models.ErrOrderNotPaid) {
			writeError(w, http.StatusConflict, "Order must be paid before it can be marked delivered")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	update := bson.M{"$set": bson.M{
		"is_delivered": order.IsDelivered,
		"delivered_at": order.DeliveredAt,
	}}
	if _, err := ac.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	order.SyncStatus()
	writeJSON(w, http.StatusOK, order)
}

func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)[name])
}
