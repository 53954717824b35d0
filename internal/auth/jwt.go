package auth

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity and its role.
type Claims struct {
	UserID    uint   `json:"userId"`
	ProfileID string `json:"profileId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenTTL is the access-token lifetime.
const TokenTTL = 24 * time.Hour

var (
	secretOnce sync.Once
	secret     []byte
)

func jwtSecret() ([]byte, error) {
	secretOnce.Do(func() {
		secret = []byte(os.Getenv("JWT_SECRET"))
	})
	if len(secret) == 0 {
		return nil, errors.New("JWT_SECRET not set")
	}
	return secret, nil
}

// GenerateToken signs an HS256 JWT for the given identity.
func GenerateToken(userID uint, profileID, role string) (string, error) {
	key, err := jwtSecret()
	if err != nil {
		return "", err
	}
	claims := &Claims{
		UserID:    userID,
		ProfileID: profileID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses the token and returns its claims.
func ValidateToken(tokenStr string) (*Claims, error) {
	key, err := jwtSecret()
	if err != nil {
		return nil, err
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("could not extract claims")
	}
	return claims, nil
}
