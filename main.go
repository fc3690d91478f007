package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visionx-api/config"
	"visionx-api/controllers"
	"visionx-api/middleware"
	"visionx-api/pricing"
	"visionx-api/routes"
	"visionx-api/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger

	// Set the JWT secret key and token lifetime
	utils.JwtKey = []byte(cfg.JWTSecret)
	utils.TokenLifetime = time.Duration(cfg.TokenLifetimeDays) * 24 * time.Hour

	// Connect to MongoDB
	client := utils.ConnectDB(cfg.MongoURI)
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	// Seed the initial admin account
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	users := client.Database(cfg.DBName).Collection("users")
	if err := utils.SeedAdminUser(seedCtx, users, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	// Initialize services and controllers
	emailService := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender)
	pricer := pricing.NewPricer(cfg.TaxRate, cfg.ShippingFlatRate)

	userController := controllers.NewUserController(client, cfg.DBName)
	productController := controllers.NewProductController(client, cfg.DBName)
	cartController := controllers.NewCartController(client, cfg.DBName, pricer)
	orderController := controllers.NewOrderController(client, cfg.DBName, pricer, emailService, cfg.RequirePaidBeforeDelivery)
	adminController := controllers.NewAdminController(client, cfg.DBName, cfg.RequirePaidBeforeDelivery)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))

	routes.RegisterRoutes(router, userController, productController, cartController, orderController, adminController)

	// CORS wraps the router so preflight requests are answered even for
	// paths the router would not match.
	handler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})(router)

	// Start the server
	logger.Info().Str("port", cfg.Port).Msg("server is running")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
