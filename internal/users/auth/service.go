// Copyright (c) 2026 Workbay. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/sec"
	"github.com/workbay/workbay/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting signed access tokens.
type TokenIssuer interface {
	// Issue creates a signed JWT string carrying the given identity.
	Issue(userID, username, role string) (string, error)
	// TTL reports the configured lifetime of issued tokens.
	TTL() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, issuer TokenIssuer) *Service {
	return &Service{
		userRepository: userRepo,
		tokenIssuer:    issuer,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	FullName      string
	Role          sec.UserRole
	TermsAccepted bool
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member, handling terms acceptance,
identity uniqueness, and password hashing.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists), validation, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Registration requires an explicit terms-of-service acceptance.
	if !input.TermsAccepted {
		return nil, apperr.Unprocessable("Terms of service must be accepted")
	}

	// Accounts self-register as clients or developers only. Admins are
	// provisioned out of band.
	if input.Role != sec.RoleClient && input.Role != sec.RoleDeveloper {
		return nil, apperr.Unprocessable("Role must be client or developer")
	}

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:            uuidv7.New(),
		Username:      input.Username,
		Email:         input.Email,
		PasswordHash:  hashedPassword,
		FullName:      input.FullName,
		Role:          input.Role,
		IsActive:      true,
		TermsAccepted: true,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginResult represents a successfully issued access grant.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // Seconds until the access token expires.
	User        *User
}

/*
Login validates user credentials and issues a signed access token.

Description: Verifies identity via constant-time password comparison and
mints a stateless bearer token carrying the user's claims.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Transport-ready token and profile
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	var user *User
	var err error
	// Flexible login: look up by Username or Email
	user, err = service.userRepository.FindByUsername(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByEmail(context, input.Login)
	}

	// If (err != nil) the user does not exist. Burn a bcrypt comparison on a
	// dummy digest so the unknown-user path costs the same as a real mismatch,
	// then return the same generic message to prevent enumeration.
	if err != nil {
		sec.CheckPasswordHash(input.Password, sec.DummyDigest)
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash. bcrypt compares in constant time to prevent timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Deactivated accounts authenticate like unknown ones.
	if !user.IsActive {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Mint the stateless access token carrying the user's identity claims.
	accessToken, err := service.tokenIssuer.Issue(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(service.tokenIssuer.TTL().Seconds()),
		User:        user,
	}, nil
}

// # Identity Lookup

/*
CurrentUser returns the full account record for an authenticated identity.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - error: NotFound or storage errors
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}
