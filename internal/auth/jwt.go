package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/config"
)

const (
	UserTypeStudent = "student"
	UserTypeAdmin   = "admin"
)

type Claims struct {
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the platform's access tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	expiry := cfg.Auth.TokenExpiry
	if expiry == 0 {
		expiry = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(cfg.Auth.JWTSecret),
		expiry: expiry,
	}
}

func (m *TokenManager) Issue(userID, email, name, userType string, now time.Time) (string, error) {
	claims := Claims{
		UserID:   userID,
		Email:    email,
		Name:     name,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// ExtractToken pulls the bearer token out of an Authorization header value.
// A bare token without the Bearer prefix is accepted as well.
func ExtractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return authHeader
}
