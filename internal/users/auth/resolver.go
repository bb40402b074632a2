// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package auth

import (
	"net/http"
	"time"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/sec"
)

// TokenVerifier checks a signed session token and returns its claims.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Resolver turns request cookies into an authenticated identity, and
// re-issues the session cookie on behalf of the edge gate.
//
// Implements gate.SessionResolver and gate.SessionRefresher.
type Resolver struct {
	verifier TokenVerifier
	provider TokenProvider
	secure   bool
}

// NewResolver constructs a [Resolver]. secure controls the cookie's Secure
// flag (disabled only in local development over plain HTTP).
func NewResolver(verifier TokenVerifier, provider TokenProvider, secure bool) *Resolver {
	return &Resolver{verifier: verifier, provider: provider, secure: secure}
}

// Resolve returns the identity bound to the session cookie, or nil.
//
// A missing, malformed, or expired cookie all mean "anonymous" — never an
// error. The decision of whether anonymity is acceptable belongs to the
// gate and to each action's policy, not here.
func (resolver *Resolver) Resolve(request *http.Request) *sec.AuthClaims {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := resolver.verifier.VerifyToken(cookie.Value)
	if err != nil {
		return nil
	}

	return claims
}

// Refresh re-issues the session cookie with a fresh expiry for an already
// verified identity, sliding the session lifetime forward.
//
// Signing failures are swallowed: the current cookie is still valid, so the
// navigation must not be interrupted.
func (resolver *Resolver) Refresh(writer http.ResponseWriter, claims *sec.AuthClaims) {
	token, err := resolver.provider.GenerateAccessToken(claims.UserID, claims.Nickname, claims.Email, SessionTokenTTL)
	if err != nil {
		return
	}

	resolver.SetSessionCookie(writer, token, time.Now().Add(SessionTokenTTL))
}

// SetSessionCookie writes the session JWT cookie used by the edge gate.
func (resolver *Resolver) SetSessionCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		Secure:   resolver.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately (logout).
func (resolver *Resolver) ClearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   resolver.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
