// Copyright (c) 2026 Workbay. All rights reserved.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/constants"
	"github.com/workbay/workbay/internal/platform/ctxutil"
	"github.com/workbay/workbay/internal/platform/respond"
	"github.com/workbay/workbay/internal/platform/sec"
)

// # Access Guard
//
// Every request to a protected route passes through the same pipeline:
// extract bearer token → verify signature/expiry → resolve the subject to a
// live user → attach the resolved identity to the context. A failure at any
// step short-circuits with a generic 401 before the handler runs. The
// internal failure kind goes to structured logs only — clients never learn
// whether a token was malformed, tampered, expired, or orphaned.

// TokenVerifier validates a raw token string into a verified claim set.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the guard from the [sec.TokenCodec]
// implementation, allowing mocks to be injected during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AccessClaims, error)
}

// SubjectResolver turns a verified token subject into a live identity.
//
// Implementations look the subject up in the user store on every request —
// identities are never cached, so a deleted or deactivated user is locked
// out as soon as their record changes, regardless of token expiry.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, subjectID string) (*sec.Principal, error)
}

// genericAuthFailure is the single client-visible rejection for every token
// validation failure kind, per the no-oracle rule.
func genericAuthFailure() *apperr.AppError {
	return apperr.Unauthorized("Could not validate credentials")
}

// Authenticate extracts and verifies the bearer token from the Authorization
// header, then resolves the claim subject into a [*sec.Principal].
//
// # Flow
//
//  1. No Authorization header: the request proceeds as anonymous. Protected
//     route groups reject it downstream via [RequireAuth].
//  2. Malformed header (not 'Bearer <token>'): rejected.
//  3. Token verification via [TokenVerifier]: malformed, tampered, and
//     expired tokens are all rejected with the same generic message.
//  4. Subject resolution: a token whose user no longer exists is rejected
//     identically.
//  5. Success: the resolved identity is attached to the request context.
func Authenticate(verifier TokenVerifier, resolver SubjectResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			logger := ctxutil.GetLogger(request.Context())

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) {
				logger.WarnContext(request.Context(), "auth_rejected",
					slog.String("reason", "malformed_header"))
				respond.Error(writer, request, genericAuthFailure())
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenString := strings.TrimSpace(parts[1])
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				// Expiry is a distinct sub-case for diagnostics only; the
				// client-visible rejection is identical.
				reason := "invalid_token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					reason = "expired_token"
				}
				logger.WarnContext(request.Context(), "auth_rejected",
					slog.String("reason", reason))
				respond.Error(writer, request, genericAuthFailure())
				return
			}

			// ── 4. Subject Resolution ─────────────────────────────────────────
			subjectID := claims.Subject
			if subjectID == "" {
				subjectID = claims.UserID
			}

			principal, err := resolver.ResolveSubject(request.Context(), subjectID)
			if err != nil {
				// User deleted or deactivated after token issuance.
				logger.WarnContext(request.Context(), "auth_rejected",
					slog.String("reason", "unknown_subject"),
					slog.String("subject", subjectID))
				respond.Error(writer, request, genericAuthFailure())
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks authenticated requests whose identity cannot act in the
// given role. Admins pass every role check. It implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !principal.Role.Grants(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
