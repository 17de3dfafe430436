// Copyright (c) 2026 Workbay. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/sec"
	"github.com/workbay/workbay/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user profiles.
//
// It ensures that profile updates and password rotation follow established
// business constraints.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// UpdateProfileInput holds the mutable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	Email    *string
	FullName *string
}

/*
UpdateProfile applies partial changes to the caller's own account.

Parameters:
  - context: context.Context
  - userID: string (The authenticated caller)
  - input: UpdateProfileInput

Returns:
  - *auth.User: Updated entity
  - error: NotFound, Conflict, or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		// Changing email must not collide with another account.
		if _, err := service.userRepository.FindByEmail(context, *input.Email); err == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
		user.Email = *input.Email
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	return user, nil
}

/*
ChangePassword rotates the caller's credential after verifying the current one.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized if the current password is wrong, or storage errors
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	user.PasswordHash = newHash
	if err := service.userRepository.Update(context, user); err != nil {
		return fmt.Errorf("account_service_password_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "password_changed", slog.String("user_id", userID))
	return nil
}

/*
Deactivate disables the caller's own account. Existing tokens stop resolving
on the next request.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: NotFound or storage errors
*/
func (service *Service) Deactivate(context context.Context, userID string) error {
	if err := service.userRepository.Deactivate(context, userID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "account_deactivated", slog.String("user_id", userID))
	return nil
}

/*
PublicProfileByUsername returns the public view of any member's profile.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *PublicProfile: Safety-mapped view
  - error: NotFound or storage errors
*/
func (service *Service) PublicProfileByUsername(context context.Context, username string) (*PublicProfile, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperr.NotFound("User")
	}

	return NewPublicProfile(user), nil
}
