// Copyright (c) 2026 Workbay. All rights reserved.

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DummyDigest is a valid bcrypt digest of a random throwaway secret.
//
// Login flows compare the supplied password against this digest when the
// account does not exist, so that unknown identifiers cost roughly the same
// as wrong passwords. The comparison result is always discarded.
const DummyDigest = "$2a$10$hUXvLKkulUkNerPdwHC9I.1rl1nvPCYAxUCUgyiQxpMjbWfdaUq1u"

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// The salt is generated internally, so equal passwords produce different
// digests across calls.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// It returns false for malformed digests rather than surfacing an error:
// a digest that cannot be parsed simply does not match. The underlying
// bcrypt comparison is constant-time.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
