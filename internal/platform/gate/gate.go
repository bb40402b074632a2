// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

/*
Package gate implements the edge access gate: the coarse, route-prefix-based
redirect check applied to every incoming request before any handler runs.

The gate distinguishes only "has a session" from "has none" — fine-grained
role checks belong to the mutation gateway, never here. Routes fall into a
closed set of classes:

  - Public: pass through regardless of identity.
  - AuthOnly: login/register pages; signed-in visitors are sent to the
    protected home.
  - Protected: dashboard/admin subtrees; anonymous visitors are sent to the
    login page.

On every pass — including pass-through — the session cookie is refreshed so
session lifetime slides forward with each navigation.
*/
package gate

import (
	"net/http"
	"strings"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/ctxutil"
	"github.com/minevale/api/internal/platform/sec"
)

// # Route Classification

// RouteClass is the closed set of access classes a path can belong to.
type RouteClass int

const (
	// RoutePublic routes never redirect.
	RoutePublic RouteClass = iota

	// RouteAuthOnly routes (login/register) reject already-signed-in visitors.
	RouteAuthOnly

	// RouteProtected routes (dashboard/admin) require a session.
	RouteProtected
)

// String returns the class name for logs and metrics labels.
func (c RouteClass) String() string {
	switch c {
	case RouteAuthOnly:
		return "auth_only"
	case RouteProtected:
		return "protected"
	default:
		return "public"
	}
}

// Adding a new protected subtree is a one-line change here, covered by the
// classification table test.
var (
	authOnlyPrefixes  = []string{constants.RouteLogin, constants.RouteRegister}
	protectedPrefixes = []string{constants.RouteProtectedHome, constants.RouteAdmin}
)

// Classify maps a request path onto its [RouteClass].
//
// Matching is by whole path segment: "/adminzone" is public, "/admin" and
// "/admin/users" are protected.
func Classify(path string) RouteClass {
	for _, prefix := range authOnlyPrefixes {
		if matchesPrefix(path, prefix) {
			return RouteAuthOnly
		}
	}
	for _, prefix := range protectedPrefixes {
		if matchesPrefix(path, prefix) {
			return RouteProtected
		}
	}
	return RoutePublic
}

// matchesPrefix reports whether path equals prefix or descends from it.
func matchesPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// # Collaborator Contracts

// SessionResolver produces the identity bound to the request cookies, or nil.
//
// Absence of a session is a valid, expected outcome — implementations never
// return an error for "no session".
type SessionResolver interface {
	Resolve(request *http.Request) *sec.AuthClaims
}

// SessionRefresher re-issues the session cookie with a fresh expiry.
type SessionRefresher interface {
	Refresh(writer http.ResponseWriter, claims *sec.AuthClaims)
}

// RedirectRecorder counts gate redirects for observability. May be nil.
type RedirectRecorder interface {
	RecordGateRedirect(routeClass string)
}

// # Middleware

// Middleware evaluates the gate once per request.
//
// The resolved identity (when present) is also injected into the request
// context so downstream handlers share the same resolution.
func Middleware(sessions SessionResolver, refresher SessionRefresher, recorder RedirectRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			claims := sessions.Resolve(request)

			// Sliding session: refresh happens on every navigation with a
			// live session, including the pass-through path.
			if claims != nil && refresher != nil {
				refresher.Refresh(writer, claims)
			}

			routeClass := Classify(request.URL.Path)

			switch {
			case routeClass == RouteAuthOnly && claims != nil:
				if recorder != nil {
					recorder.RecordGateRedirect(routeClass.String())
				}
				http.Redirect(writer, request, constants.RouteProtectedHome, http.StatusFound)
				return

			case routeClass == RouteProtected && claims == nil:
				if recorder != nil {
					recorder.RecordGateRedirect(routeClass.String())
				}
				http.Redirect(writer, request, constants.RouteLogin, http.StatusFound)
				return
			}

			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}

			next.ServeHTTP(writer, request)
		})
	}
}
