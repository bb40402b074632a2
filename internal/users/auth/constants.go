// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTokenTTL is the duration a session JWT remains valid. The edge
	// gate refreshes the cookie on every navigation, so the effective
	// lifetime slides forward while the player stays active.
	SessionTokenTTL = 30 * time.Minute

	// RefreshTokenTTL is the duration a refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// NicknameMinLen and NicknameMaxLen bound in-game nicknames, matching
	// the game server's own limits.
	NicknameMinLen = 3
	NicknameMaxLen = 16

	// PasswordMinLen is the minimum accepted password length.
	PasswordMinLen = 6
)
