// Copyright (c) 2026 Workbay. All rights reserved.

/*
Package account handles user profile management and security settings.

It provides functionalities for users to view and update their private
identity data, rotate their password, and deactivate their account, plus
the public-facing developer/client profile view.

# Architecture

  - Entities: PublicProfile (DTO).
  - Domain: This package depends on the auth package for the User entity.
*/
package account

import (
	"time"

	"github.com/workbay/workbay/internal/users/auth"
)

// # Domain Entities

// PublicProfile is the safety-mapped view of a user shown to other members.
// It omits email and account flags for transport.
type PublicProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPublicProfile maps a full account entity onto its public view.
func NewPublicProfile(user *auth.User) *PublicProfile {
	return &PublicProfile{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// # Field Identifiers

const (
	FieldEmail           = "email"
	FieldFullName        = "full_name"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldUsername        = "username"
)
