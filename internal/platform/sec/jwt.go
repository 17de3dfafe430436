// Copyright (c) 2026 Workbay. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces (e.g. the middleware TokenVerifier).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the fixed claim set embedded inside a JWT access token.
//
// # Why a fixed struct?
//
// Issuance and verification share one shape, so the payload cannot drift
// silently between the two sides. Required facts live in the registered
// claims (Subject, ExpiresAt); application claims are abbreviated to keep
// the token small.
type AccessClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// ErrInvalidToken is the single error class surfaced by [TokenCodec.Verify].
//
// Malformed encoding, bad signatures, and expired tokens all wrap this error;
// callers must not reveal which case occurred to clients. Expiry can still be
// distinguished for diagnostics via errors.Is(err, jwt.ErrTokenExpired).
var ErrInvalidToken = errors.New("sec: invalid token")

// TokenCodec signs and verifies HMAC-SHA256 access tokens.
//
// # Configuration
//
// The signing secret, issuer, and TTL are fixed at construction and never
// change for the process lifetime. The codec holds no mutable state and is
// safe for concurrent use by every request.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenCodec creates a TokenCodec from explicit configuration.
//
// It rejects empty secrets and non-positive TTLs up front so that a
// misconfigured deployment fails at startup, not at the first login.
func NewTokenCodec(secret, issuer string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token TTL must be positive, got %s", ttl)
	}

	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the configured access token lifetime.
func (codec *TokenCodec) TTL() time.Duration {
	return codec.ttl
}

// Issue creates a signed access token for the given user.
//
// The absolute expiry (now + TTL) is injected into the claim set before
// signing; a token without an expiry cannot be produced through this API.
func (codec *TokenCodec) Issue(userID, username, role string) (string, error) {
	currentTime := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(codec.ttl)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the structure, signature, and expiry of a token string.
//
// # Order of checks
//
//  1. Structural decode — malformed encoding is rejected.
//  2. Signature — any bit flip in payload or signature is rejected, even if
//     the claim content would otherwise be valid.
//  3. Expiry — current time at or past the embedded expiry is rejected.
//
// A token that fails any step yields no claims at all.
func (codec *TokenCodec) Verify(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Pin the algorithm: a token re-signed with a different method must
		// never reach the HMAC comparison.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return codec.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Defense in depth: the subject is the only key used to resolve the
	// acting user, so an empty one is useless and rejected.
	if claims.Subject == "" && claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}
