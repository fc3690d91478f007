package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"visionx-api/middleware"
	"visionx-api/models"
	"visionx-api/utils"
)

// UserController handles registration, login and profile requests.
type UserController struct {
	Collection *mongo.Collection
}

// NewUserController creates a new UserController.
func NewUserController(client *mongo.Client, dbName string) *UserController {
	return &UserController{
		Collection: client.Database(dbName).Collection("users"),
	}
}

// FindByID loads a user by document id. Satisfies middleware.UserFinder.
func (uc *UserController) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// authResponse is the shape returned by register, login and profile update.
type authResponse struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	IsAdmin bool               `json:"isAdmin"`
	Token   string             `json:"token"`
}

func newAuthResponse(user models.User, token string) authResponse {
	return authResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}
}

// Register handles user registration.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	if len(input.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		writeError(w, http.StatusBadRequest, "User already exists with this email")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashedPassword),
		IsAdmin:   false,
		Status:    models.UserStatusActive,
		CreatedAt: time.Now(),
	}

	result, err := uc.Collection.InsertOne(ctx, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating user")
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusCreated, newAuthResponse(user, token))
}

// Login handles user authentication.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if user.IsBlocked() {
		writeError(w, http.StatusUnauthorized, "Account is disabled")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(user, token))
}

// GetProfile retrieves the authenticated user's profile.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"_id":     user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
	})
}

// UpdateProfile updates the authenticated user's name, email or password.
// Changing the password requires the current one.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		CurrentPassword string `json:"currentPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Email != "" && input.Email != user.Email {
		count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": input.Email})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if count > 0 {
			writeError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		update["email"] = input.Email
	}

	if input.Password != "" {
		if input.CurrentPassword == "" {
			writeError(w, http.StatusBadRequest, "Current password is required to set a new password")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
			writeError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		if len(input.Password) < 6 {
			writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
			return
		}
		if input.Password != input.ConfirmPassword {
			writeError(w, http.StatusBadRequest, "New password and confirmation do not match")
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error hashing password")
			return
		}
		update["password"] = string(hashedPassword)
	}

	if len(update) > 0 {
		_, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error updating profile")
			return
		}
	}

	var updated models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": user.ID}).Decode(&updated); err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading updated profile")
		return
	}

	token, err := utils.GenerateJWT(updated.ID.Hex())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(updated, token))
}
