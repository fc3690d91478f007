package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visionx-api/models"
	"visionx-api/utils"
)

type stubUserFinder struct {
	users map[primitive.ObjectID]*models.User
}

func (f *stubUserFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

func newTestFinder(users ...*models.User) *stubUserFinder {
	finder := &stubUserFinder{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		finder.users[u.ID] = u
	}
	return finder
}

func signToken(t *testing.T, userID string, key []byte, expiresAt time.Time) string {
	t.Helper()
	claims := &utils.Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestProtect(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	userID := primitive.NewObjectID()
	user := &models.User{ID: userID, Name: "Jordan", Email: "jordan@example.com"}
	blockedID := primitive.NewObjectID()
	blocked := &models.User{ID: blockedID, Email: "blocked@example.com", Status: models.UserStatusBlocked}
	finder := newTestFinder(user, blocked)

	validToken := signToken(t, userID.Hex(), utils.JwtKey, time.Now().Add(time.Hour))
	blockedToken := signToken(t, blockedID.Hex(), utils.JwtKey, time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "NotBearer " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "tampered token",
			authHeader: "Bearer " + signToken(t, userID.Hex(), []byte("wrong-key"), time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signToken(t, userID.Hex(), utils.JwtKey, time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token but user deleted",
			authHeader: "Bearer " + signToken(t, primitive.NewObjectID().Hex(), utils.JwtKey, time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "blocked account",
			authHeader: "Bearer " + blockedToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/orders/myorders", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			Protect(finder)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestProtectAttachesUserToContext(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	userID := primitive.NewObjectID()
	user := &models.User{ID: userID, Name: "Jordan", Email: "jordan@example.com"}
	finder := newTestFinder(user)

	var gotUser *models.User
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID.Hex(), utils.JwtKey, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	Protect(finder)(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, userID, gotUser.ID)
	assert.Equal(t, "jordan@example.com", gotUser.Email)
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{
			name:       "no user in context",
			user:       nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "authenticated non-admin gets 403 not 401",
			user:       &models.User{ID: primitive.NewObjectID(), IsAdmin: false},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin passes through",
			user:       &models.User{ID: primitive.NewObjectID(), IsAdmin: true},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin/dashboard", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), UserContextKey, tt.user))
			}
			rec := httptest.NewRecorder()

			AdminOnly(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
