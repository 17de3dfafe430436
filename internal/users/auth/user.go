// Copyright (c) 2026 Workbay. All rights reserved.

/*
Package auth implements the user identity and access management layer.

It defines the core domain entity (User) and the logic for registration,
credential verification, and token issuance.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/workbay/workbay/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Workbay platform.
type User struct {
	ID            string       `json:"id"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"` // Explicitly omitted from JSON for security.
	FullName      string       `json:"full_name"`
	Role          sec.UserRole `json:"role"`
	IsActive      bool         `json:"is_active"`
	TermsAccepted bool         `json:"terms_accepted"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername      = "username"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldFullName      = "full_name"
	FieldRole          = "role"
	FieldTermsAccepted = "terms_accepted"
	FieldLogin         = "login"
	FieldAccessToken   = "access_token"
	FieldTokenType     = "token_type"
	FieldExpiresIn     = "expires_in"
	FieldUser          = "user"
)
