// Copyright (c) 2026 Workbay. All rights reserved.

package sec

// Principal is the resolved acting identity for one request.
//
// It is constructed fresh by the access guard after token verification and a
// live user-store lookup; it is never cached across requests. Handlers may
// assume a Principal found in the request context is fully validated.
type Principal struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}
