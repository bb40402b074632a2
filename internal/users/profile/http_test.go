// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package profile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minevale/api/internal/platform/ctxutil"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/internal/users/profile"
)

// errorEnvelope mirrors the API's error response shape.
type errorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func patchRole(t *testing.T, handler *profile.Handler, actor *sec.AuthClaims, targetID, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPatch, "/"+targetID+"/role", strings.NewReader(body))
	if actor != nil {
		request = request.WithContext(ctxutil.WithAuthUser(context.Background(), actor))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_UpdateRole_NonUUIDNeverReachesStore verifies a malformed target
id fails validation at the handler with a field error on "userId" and that
no role update is attempted.
*/
func TestHandler_UpdateRole_NonUUIDNeverReachesStore(t *testing.T) {
	service, repo, _ := newFixture()
	handler := profile.NewHandler(service)

	recorder := patchRole(t, handler, claimsFor("admin-1"), "not-a-uuid", `{"newRole":"mod"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "userId", envelope.Details[0].Field)

	assert.Empty(t, repo.roleUpdates)
}

/*
TestHandler_UpdateRole_UnknownRoleRejected verifies a role value outside
the closed set fails with a field error on "newRole" and no store write.
*/
func TestHandler_UpdateRole_UnknownRoleRejected(t *testing.T) {
	service, repo, _ := newFixture()
	handler := profile.NewHandler(service)

	recorder := patchRole(t, handler, claimsFor("admin-1"), "0190f1a2-3b4c-7d5e-8f90-123456789abc", `{"newRole":"superadmin"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "newRole", envelope.Details[0].Field)

	assert.Empty(t, repo.roleUpdates)
}

/*
TestHandler_UpdateRole_NonAdminGetsDenialMessage verifies the full handler
path surfaces the exact role-change denial for non-admin callers.
*/
func TestHandler_UpdateRole_NonAdminGetsDenialMessage(t *testing.T) {
	service, repo, _ := newFixture()
	handler := profile.NewHandler(service)

	targetID := "0190f1a2-3b4c-7d5e-8f90-123456789abc"
	repo.profiles[targetID] = &profile.Profile{ID: targetID, Nickname: "Alvo", Role: "user"}
	repo.roles[targetID] = sec.RoleUser

	recorder := patchRole(t, handler, claimsFor("mod-1"), targetID, `{"newRole":"admin"}`)

	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, profile.MsgRoleChangeDenied, envelope.Error)

	assert.Empty(t, repo.roleUpdates)
	assert.Equal(t, sec.RoleUser, repo.roles[targetID])
}
