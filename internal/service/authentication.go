package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"school-api/internal/config"
	"school-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the validity window of issued tokens.
const AccessTokenTTL = time.Hour

// secret is set once at startup via SetSecret and read-only afterwards.
// The development default keeps local runs working without configuration;
// config.Load rejects it in production.
var secret = []byte(config.DefaultJWTSecret)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// SetSecret injects the process-wide signing secret. Call before serving.
func SetSecret(s string) {
	secret = []byte(s)
}

// CustomClaims is the JWT payload: the user identity plus registered claims.
type CustomClaims struct {
	UserID int    `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthenticateUser checks a plaintext password against the stored hash.
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return errors.New("invalid password")
	}
	return nil
}

// IssueAccessToken signs an HS256 token bound to the user's id and email.
func IssueAccessToken(user model.User, ttl time.Duration) (string, error) {
	now := timeNow()
	claims := CustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken parses and validates a token string.
func VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
