// Package auth implements the cryptographic pieces of the authentication
// flow: HS256 token signing/verification and bcrypt password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mpashkov/videovault/internal/common"
)

// Payload is the identity claim embedded in every token. It must never
// carry the password hash or any other secret.
type Payload struct {
	ID    int64
	Login string
}

// Claims combines the registered JWT claims with the identity payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Login  string `json:"login"`
}

// TokenSigner mints and verifies the two token classes. Access and refresh
// tokens are signed with distinct secrets so one class can never stand in
// for the other.
type TokenSigner struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenSigner validates the secrets and builds a signer. An empty secret
// or identical secrets is a configuration error; the caller is expected to
// treat it as fatal at startup.
func NewTokenSigner(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenSigner, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, common.ErrMissingSecret
	}
	if accessSecret == refreshSecret {
		return nil, common.ErrIdenticalSecret
	}
	return &TokenSigner{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// SignAccess mints a short-lived access token for the payload.
func (s *TokenSigner) SignAccess(p Payload) (string, error) {
	return sign(p, s.accessSecret, s.accessTTL)
}

// SignRefresh mints a long-lived refresh token for the payload.
func (s *TokenSigner) SignRefresh(p Payload) (string, error) {
	return sign(p, s.refreshSecret, s.refreshTTL)
}

// VerifyAccess checks signature and expiry of an access token and returns
// the embedded payload.
func (s *TokenSigner) VerifyAccess(token string) (*Payload, error) {
	return verify(token, s.accessSecret)
}

// VerifyRefresh checks signature and expiry of a refresh token and returns
// the embedded payload. Registry membership is the caller's concern.
func (s *TokenSigner) VerifyRefresh(token string) (*Payload, error) {
	return verify(token, s.refreshSecret)
}

func sign(p Payload, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps two tokens minted in the same second distinct, so
			// every login produces its own session registry row.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: p.ID,
		Login:  p.Login,
	})
	return token.SignedString(secret)
}

func verify(tokenString string, secret []byte) (*Payload, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenInvalidSignature
		default:
			return nil, common.ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	return &Payload{ID: claims.UserID, Login: claims.Login}, nil
}
