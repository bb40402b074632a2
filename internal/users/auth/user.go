// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

/*
Package auth implements user identity and session management.

It defines the core domain entities (User) and the logic for registration,
login, session resolution, and refresh-token rotation.

# Architecture

This layer is the "Truth" of the system for identity. Entities defined here
have no external dependencies and encapsulate all business rules related to
who a request belongs to. The persisted role is intentionally NOT part of the
session token; role checks go through the profile package on every gated
mutation.
*/
package auth

import (
	"time"

	"github.com/minevale/api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered player of the MineVale community.
type User struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldNickname        = "nickname"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)
