package auth

import (
	"time"

	"freework/internal/domain/entities"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL matches the session cookie expiry.
const TokenTTL = time.Hour

// Claims carried by the session token.
type Claims struct {
	UserID string            `json:"id"`
	Mail   string            `json:"mail"`
	Role   entities.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed session token for a user.
func GenerateJWT(user entities.User, secret string) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Mail:   user.Mail,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT parses and validates a session token string.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
