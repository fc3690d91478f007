package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"visionx-api/models"
)

// SeedAdminUser creates the initial admin account from the configured seed
// credentials. It is idempotent: when the email already exists or no email
// is configured, nothing happens.
func SeedAdminUser(ctx context.Context, users *mongo.Collection, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		IsAdmin:   true,
		Status:    models.UserStatusActive,
		CreatedAt: time.Now(),
	}

	_, err = users.InsertOne(ctx, admin)
	return err
}
