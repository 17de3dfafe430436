// Copyright (c) 2026 Workbay. All rights reserved.

package auth

import (
	"context"

	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/internal/platform/sec"
)

// Resolver adapts the user repository to the access guard's subject lookup.
//
// # Freshness
//
// Every verified token triggers a live lookup: a user deleted or deactivated
// after token issuance is rejected immediately, regardless of the token's
// remaining lifetime.
type Resolver struct {
	userRepository UserRepository
}

// NewResolver constructs a Resolver backed by the given repository.
func NewResolver(userRepo UserRepository) *Resolver {
	return &Resolver{userRepository: userRepo}
}

// ResolveSubject maps a verified token subject to a live identity.
func (resolver *Resolver) ResolveSubject(context context.Context, subjectID string) (*sec.Principal, error) {
	user, err := resolver.userRepository.FindByID(context, subjectID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	return &sec.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}
