// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package middleware

import (
	"net/http"
	"strings"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/ctxutil"
	"github.com/minevale/api/internal/platform/gateway"
	"github.com/minevale/api/internal/platform/respond"
	"github.com/minevale/api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token
// service implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the session token from the request.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header; fall back to the
//     session cookie so browser navigations and API clients share one path.
//  2. If neither is present, the request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenStr, ok := bearerToken(request)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Sessão inválida ou expirada"))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken extracts the raw token from the Authorization header.
// An empty or malformed header is treated as anonymous, not as an error:
// the fine-grained checks below decide whether identity is required.
func bearerToken(request *http.Request) (string, bool) {
	authHeader := request.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	return parts[1], true
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized(gateway.MsgLoginRequired))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
