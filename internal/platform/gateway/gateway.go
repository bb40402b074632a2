// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

/*
Package gateway implements the fixed pre-write protocol shared by every
mutation action in the platform.

Every server-side action follows the same sequence:

 1. Resolve the identity bound to the request (absence is expected, not a fault).
 2. Validate the raw input (see the validate package) — no store access happens
    after a validation failure.
 3. If the action is role-gated, read the actor's persisted profile role and
    require it to meet the action's [Policy].
 4. Perform exactly one store write.
 5. Invalidate every cached view that depends on the mutated entity.

This package owns steps 1 and 3: the policy table and the authorization
check. Keeping the requirements of each action in data rather than scattered
conditionals makes the gating of every mutation reviewable in one place and
lets tests assert the chosen policy directly.
*/
package gateway

import (
	"context"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/ctxutil"
	"github.com/minevale/api/internal/platform/sec"
)

// # Collaborator Contracts

// RoleLookup resolves the persisted role of an identity.
//
// Implementations read exactly one profile row. The caller never sees a raw
// store fault: [Authorize] degrades both "no profile" and store errors into
// the same denial outcome.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (sec.Role, error)
}

// ViewInvalidator marks previously rendered view paths stale so they are
// recomputed on the next read.
//
// Invalidation is best-effort and fire-and-forget: it runs after the store
// write, it is not transactional with it, and its failure never fails the
// mutation. The store write is the source of truth.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, paths ...string)
}

// # Action Policies

// Policy declares the authentication and role requirements of a single
// mutation action.
//
// The zero value is a fully open action (no session needed). A non-empty
// MinRole implies RequireAuth.
type Policy struct {
	// RequireAuth rejects anonymous callers with an Unauthorized denial.
	RequireAuth bool

	// MinRole, when set, requires the actor's persisted profile role to
	// meet or exceed this role. The role is read from the profiles table
	// on every call so demotions take effect immediately.
	MinRole sec.Role
}

// AuthOnly is the policy for actions any signed-in player may perform.
func AuthOnly() Policy {
	return Policy{RequireAuth: true}
}

// RequireRole is the policy for staff-gated actions.
func RequireRole(role sec.Role) Policy {
	return Policy{RequireAuth: true, MinRole: role}
}

// # Localized Denials

const (
	// MsgLoginRequired is the generic denial for anonymous callers.
	MsgLoginRequired = "Você precisa estar logado para realizar esta ação."

	// MsgForbidden is the generic denial for insufficient roles. Actions
	// with a more specific message pass their own to [Authorize].
	MsgForbidden = "Você não tem permissão para realizar esta ação."
)

// # Authorization

// Authorize runs the resolve + role-gate steps of the mutation protocol.
//
// actor is the identity resolved from the request, or nil for anonymous
// callers. forbiddenMessage is the localized message returned on a role
// denial; pass [MsgForbidden] when the action has no more specific wording.
//
// A store failure during the role lookup is logged and degraded to the same
// Forbidden denial as a missing or insufficient role — the caller can never
// distinguish "lookup broke" from "not allowed", and no raw store error
// escapes the action boundary.
func Authorize(ctx context.Context, policy Policy, actor *sec.AuthClaims, roles RoleLookup, forbiddenMessage string) error {

	// 1. Session presence
	if actor == nil {
		if policy.RequireAuth || policy.MinRole != "" {
			return apperr.Unauthorized(MsgLoginRequired)
		}
		return nil
	}

	// 2. Role gate (row-level read, never the JWT claim)
	if policy.MinRole == "" {
		return nil
	}

	role, err := roles.RoleOf(ctx, actor.UserID)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "role_lookup_degraded_to_denial",
			"user_id", actor.UserID,
			"error", err.Error(),
		)
		return apperr.Forbidden(forbiddenMessage)
	}

	if !role.AtLeast(policy.MinRole) {
		return apperr.Forbidden(forbiddenMessage)
	}

	return nil
}
