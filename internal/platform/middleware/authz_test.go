// Copyright (c) 2026 Workbay. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbay/workbay/internal/platform/ctxutil"
	"github.com/workbay/workbay/internal/platform/middleware"
	"github.com/workbay/workbay/internal/platform/sec"
)

// fakeVerifier returns canned claims or a canned error.
type fakeVerifier struct {
	claims *sec.AccessClaims
	err    error
}

func (f *fakeVerifier) Verify(string) (*sec.AccessClaims, error) {
	return f.claims, f.err
}

// fakeResolver maps subject IDs to principals.
type fakeResolver struct {
	principals map[string]*sec.Principal
}

func (f *fakeResolver) ResolveSubject(_ context.Context, subjectID string) (*sec.Principal, error) {
	if principal, ok := f.principals[subjectID]; ok {
		return principal, nil
	}
	return nil, errors.New("unknown subject")
}

func claimsFor(userID string) *sec.AccessClaims {
	claims := &sec.AccessClaims{UserID: userID}
	claims.Subject = userID
	return claims
}

// runGuard sends one request through Authenticate and reports the recorder
// plus the principal observed by the downstream handler.
func runGuard(t *testing.T, verifier middleware.TokenVerifier, resolver middleware.SubjectResolver, authHeader string) (*httptest.ResponseRecorder, *sec.Principal) {
	t.Helper()

	var seen *sec.Principal
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	handler := middleware.Authenticate(verifier, resolver)(next)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder, seen
}

/*
TestAuthenticate_NoHeader verifies anonymous requests pass through without
an identity attached.
*/
func TestAuthenticate_NoHeader(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("should not be called")}
	resolver := &fakeResolver{}

	recorder, seen := runGuard(t, verifier, resolver, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, seen)
}

/*
TestAuthenticate_MalformedHeader verifies that broken Authorization headers
are rejected with the generic message.
*/
func TestAuthenticate_MalformedHeader(t *testing.T) {
	verifier := &fakeVerifier{claims: claimsFor("user-1")}
	resolver := &fakeResolver{}

	for _, header := range []string{"Basic abc123", "BearerTokenNoSpace", "bearer"} {
		recorder, seen := runGuard(t, verifier, resolver, header)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
		assert.Nil(t, seen)
		assertGenericRejection(t, recorder)
	}
}

/*
TestAuthenticate_InvalidToken verifies tampered and expired tokens both
produce the same client-visible rejection.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"tampered", sec.ErrInvalidToken},
		{"expired", jwt.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{err: tt.err}
			resolver := &fakeResolver{}

			recorder, seen := runGuard(t, verifier, resolver, "Bearer some.jwt.token")

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Nil(t, seen)
			assertGenericRejection(t, recorder)
		})
	}
}

/*
TestAuthenticate_UnknownSubject verifies a valid token whose user no longer
exists is rejected identically to an invalid token.
*/
func TestAuthenticate_UnknownSubject(t *testing.T) {
	verifier := &fakeVerifier{claims: claimsFor("deleted-user")}
	resolver := &fakeResolver{principals: map[string]*sec.Principal{}}

	recorder, seen := runGuard(t, verifier, resolver, "Bearer some.jwt.token")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, seen)
	assertGenericRejection(t, recorder)
}

/*
TestAuthenticate_Success verifies the resolved identity reaches the handler.
*/
func TestAuthenticate_Success(t *testing.T) {
	principal := &sec.Principal{UserID: "user-1", Username: "grace", Role: sec.RoleDeveloper}
	verifier := &fakeVerifier{claims: claimsFor("user-1")}
	resolver := &fakeResolver{principals: map[string]*sec.Principal{"user-1": principal}}

	recorder, seen := runGuard(t, verifier, resolver, "Bearer some.jwt.token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
	assert.Equal(t, sec.RoleDeveloper, seen.Role)
}

/*
TestAuthenticate_CaseInsensitiveScheme verifies "bearer" matches regardless
of casing.
*/
func TestAuthenticate_CaseInsensitiveScheme(t *testing.T) {
	principal := &sec.Principal{UserID: "user-1", Role: sec.RoleClient}
	verifier := &fakeVerifier{claims: claimsFor("user-1")}
	resolver := &fakeResolver{principals: map[string]*sec.Principal{"user-1": principal}}

	for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
		recorder, seen := runGuard(t, verifier, resolver, scheme+" some.jwt.token")

		assert.Equal(t, http.StatusOK, recorder.Code, "scheme %q", scheme)
		assert.NotNil(t, seen)
	}
}

/*
TestRequireAuth verifies anonymous requests are blocked while authenticated
ones pass.
*/
func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAuth(next)

	// Anonymous: blocked.
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated: allowed.
	principal := &sec.Principal{UserID: "user-1", Role: sec.RoleClient}
	ctx := ctxutil.WithPrincipal(request.Context(), principal)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request.WithContext(ctx))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole verifies role gating, including the admin override.
*/
func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireRole(sec.RoleDeveloper)(next)

	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"matching_role", &sec.Principal{UserID: "u1", Role: sec.RoleDeveloper}, http.StatusOK},
		{"wrong_role", &sec.Principal{UserID: "u2", Role: sec.RoleClient}, http.StatusForbidden},
		{"admin_override", &sec.Principal{UserID: "u3", Role: sec.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/dev-only", nil)
			if tt.principal != nil {
				request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tt.principal))
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

// assertGenericRejection checks the response body carries the single
// generic credential failure message, never a specific reason.
func assertGenericRejection(t *testing.T, recorder *httptest.ResponseRecorder) {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	payload, _ := json.Marshal(body)
	assert.Contains(t, string(payload), "Could not validate credentials")
	assert.NotContains(t, string(payload), "expired")
	assert.NotContains(t, string(payload), "malformed")
}
