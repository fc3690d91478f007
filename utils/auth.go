package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT secret key and token lifetime, set from config at startup.
var (
	JwtKey        = []byte("your_secret_key")
	TokenLifetime = 30 * 24 * time.Hour
)

// Claims represents the JWT claims. The subject is the user's document id;
// the gate re-loads the user on every request, so nothing else is trusted
// from the token.
type Claims struct {
	UserID string `json:"id"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed bearer token for a user id.
func GenerateJWT(userID string) (string, error) {
	expirationTime := time.Now().Add(TokenLifetime)
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseJWT validates a token string and returns its claims.
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorSignatureInvalid)
	}
	return claims, nil
}
