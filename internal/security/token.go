package security

import (
	"fmt"

	"github.com/dinepoll/server/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint         `json:"id"`
	Email  string       `json:"email"`
	Scope  models.Scope `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed token for an account. No expiry claim is set;
// validity is left to the verifier's defaults.
func GenerateJWT(account models.Account, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("signing secret is not set")
	}

	claims := &Claims{
		UserID: account.ID,
		Email:  account.Email,
		Scope:  account.Scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT validates and parses a bearer token.
func ValidateJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
