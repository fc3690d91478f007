package routes

import (
	"github.com/gorilla/mux"

	"visionx-api/controllers"
	"visionx-api/middleware"
)

// RegisterRoutes sets up all the routes for the application.
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController, adminController *controllers.AdminController) {
	// Public routes
	router.HandleFunc("/auth/register", userController.Register).Methods("POST")
	router.HandleFunc("/auth/login", userController.Login).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")
	router.HandleFunc("/cart/quote", cartController.QuoteCart).Methods("POST")

	// Protected routes: any authenticated user
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.Protect(userController))
	protected.HandleFunc("/auth/profile", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/auth/profile", userController.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders/myorders", orderController.GetMyOrders).Methods("GET")
	protected.HandleFunc("/orders/{id}", orderController.GetOrderByID).Methods("GET")
	protected.HandleFunc("/orders/{id}/pay", orderController.PayOrder).Methods("PUT")

	// Product management: admin only
	products := router.PathPrefix("/products").Subrouter()
	products.Use(middleware.Protect(userController))
	products.Use(middleware.AdminOnly)
	products.HandleFunc("", productController.CreateProduct).Methods("POST")
	products.HandleFunc("/{id}", productController.UpdateProduct).Methods("PUT")
	products.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")

	// Admin back-office routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Protect(userController))
	admin.Use(middleware.AdminOnly)
	admin.HandleFunc("/dashboard", adminController.Dashboard).Methods("GET")
	admin.HandleFunc("/users", adminController.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", adminController.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id}/role", adminController.UpdateUserRole).Methods("PUT")
	admin.HandleFunc("/users/{id}/status", adminController.UpdateUserStatus).Methods("PUT")
	admin.HandleFunc("/users/{id}", adminController.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/users/{id}/orders", adminController.ListUserOrders).Methods("GET")
	admin.HandleFunc("/orders", adminController.ListOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", adminController.GetOrder).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", adminController.UpdateOrderStatus).Methods("PUT")
}
