// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

// # Package profile
//
// Public-facing projection of a player account: everything except the
// credentials. The profile shares the account row, so it exists from the
// moment the identity does, and the role read here is always the persisted
// one (never the value baked into a session token).
package profile

import "time"

// Profile is the credential-free view of a player account.
type Profile struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Field name constants for validation error details.
const (
	FieldUserID  = "userId"
	FieldNewRole = "newRole"
)
