package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenService issues and verifies stateless HS256 tokens. No server-side
// session storage: a token stays valid until its expiry.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(config JWTConfig) *TokenService {
	return &TokenService{
		secret: []byte(config.Secret),
		expiry: time.Duration(config.ExpiryHours) * time.Hour,
	}
}

// Issue creates a signed token carrying the user id as subject
func (t *TokenService) Issue(userID int64) (string, time.Time, error) {
	if len(t.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("jwt secret is empty")
	}

	now := time.Now()
	expiresAt := now.Add(t.expiry)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return token, expiresAt, nil
}

// Verify validates signature and expiry and returns the embedded user id
func (t *TokenService) Verify(tokenStr string) (int64, error) {
	if len(t.secret) == 0 {
		return 0, ErrTokenInvalid
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !tok.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID < 1 {
		return 0, ErrTokenInvalid
	}

	return userID, nil
}
