// Package auth issues and verifies identity tokens, hashes passwords and
// resolves the caller identity of inbound HTTP requests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/valmaiimtiyaz/artzybackend/pkg/utilities"
)

const (
	SessionTTL = 7 * 24 * time.Hour
	ResetTTL   = 15 * time.Minute
)

// Purpose separates token classes signed with the same key.
type Purpose string

const (
	PurposeSession Purpose = "session"
	PurposeReset   Purpose = "reset"
)

var (
	ErrInvalidToken = errors.New("token invalid or expired")
	ErrEmptySecret  = errors.New("token secret is empty")
)

// Claims is the signed payload of every token.
type Claims struct {
	UserID  int64   `json:"id"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService signs tokens with one process-wide HMAC secret.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for userID valid for ttl from now.
func (s *TokenService) Issue(userID int64, purpose Purpose, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utilities.NewKSUID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and purpose. Every failure is ErrInvalidToken.
func (s *TokenService) Verify(token string, purpose Purpose) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
