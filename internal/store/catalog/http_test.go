// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package catalog_test

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
	"github.com/minevale/api/internal/store/catalog"
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

func postProduct(t *testing.T, handler *catalog.Handler, actor *sec.AuthClaims, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if actor != nil {
		request = request.WithContext(ctxutil.WithAuthUser(context.Background(), actor))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

func putProduct(t *testing.T, handler *catalog.Handler, actor *sec.AuthClaims, productID, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPut, "/"+productID, strings.NewReader(body))
	if actor != nil {
		request = request.WithContext(ctxutil.WithAuthUser(context.Background(), actor))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Create_ShortNameFailsNameOnly verifies a two-character name is
rejected with a single field error on "name", everything else passing, and
that the store is never touched.
*/
func TestHandler_Create_ShortNameFailsNameOnly(t *testing.T) {
	service, repo, _ := newFixture()
	handler := catalog.NewHandler(service, nil)

	body := `{"name":"VI","price":"29.90","category":"vips","image":"/img/vip.png"}`
	recorder := postProduct(t, handler, adminClaims(), body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "name", envelope.Details[0].Field)

	assert.Zero(t, repo.writes)
}

/*
TestHandler_Create_NegativePriceFailsPrice verifies a negative price string
is coerced, rejected on the "price" field, and causes no store write.
*/
func TestHandler_Create_NegativePriceFailsPrice(t *testing.T) {
	service, repo, _ := newFixture()
	handler := catalog.NewHandler(service, nil)

	body := `{"name":"VIP Esmeralda","price":"-5","category":"vips","image":"/img/vip.png"}`
	recorder := postProduct(t, handler, adminClaims(), body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "price", envelope.Details[0].Field)

	assert.Zero(t, repo.writes)
}

/*
TestHandler_Create_UnparsablePriceFailsPrice verifies a non-numeric price is
rejected during coercion.
*/
func TestHandler_Create_UnparsablePriceFailsPrice(t *testing.T) {
	service, repo, _ := newFixture()
	handler := catalog.NewHandler(service, nil)

	body := `{"name":"VIP Esmeralda","price":"abc","category":"vips","image":"/img/vip.png"}`
	recorder := postProduct(t, handler, adminClaims(), body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "price", envelope.Details[0].Field)

	assert.Zero(t, repo.writes)
}

/*
TestHandler_Create_ValidPayloadSucceeds verifies the full path: decode,
validate, authorize, write, respond 201.
*/
func TestHandler_Create_ValidPayloadSucceeds(t *testing.T) {
	service, repo, views := newFixture()
	handler := catalog.NewHandler(service, nil)

	body := `{"name":"Pacote 1000 Coins","price":"9.90","category":"coins","image":"/img/coins.png"}`
	recorder := postProduct(t, handler, adminClaims(), body)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, 1, repo.writes)
	assert.Equal(t, []string{"/loja", "/admin/products"}, views.paths)
}

/*
TestHandler_Create_ZeroPriceIsAllowed verifies the price floor is inclusive:
free items validate.
*/
func TestHandler_Create_ZeroPriceIsAllowed(t *testing.T) {
	service, repo, _ := newFixture()
	handler := catalog.NewHandler(service, nil)

	body := `{"name":"Kit Inicial","price":"0","category":"coins","image":"/img/kit.png"}`
	recorder := postProduct(t, handler, adminClaims(), body)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, 1, repo.writes)
}

/*
TestHandler_Create_AnonymousGetsUnauthorized verifies the action policy
runs after validation and rejects anonymous callers.
*/
func TestHandler_Create_AnonymousGetsUnauthorized(t *testing.T) {
	service, repo, _ := newFixture()
	handler := catalog.NewHandler(service, nil)

	body := `{"name":"Pacote 1000 Coins","price":"9.90","category":"coins","image":"/img/coins.png"}`
	recorder := postProduct(t, handler, nil, body)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Zero(t, repo.writes)
}

/*
TestHandler_Update_ShortNameNeverReachesStore verifies the update path runs
the same form validation as create: a two-character name fails on "name"
and the stored product is untouched.
*/
func TestHandler_Update_ShortNameNeverReachesStore(t *testing.T) {
	service, repo, _ := newFixture()
	handler := catalog.NewHandler(service, nil)

	body := `{"name":"VI","price":"29.90","category":"vips","image":"/img/vip.png"}`
	recorder := putProduct(t, handler, adminClaims(), "0190f1a2-3b4c-7d5e-8f90-123456789abc", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "name", envelope.Details[0].Field)

	assert.Zero(t, repo.writes)
}

/*
TestHandler_Update_NonUUIDProductIDRejected verifies a malformed product id
fails before the form is validated and before any store access.
*/
func TestHandler_Update_NonUUIDProductIDRejected(t *testing.T) {
	service, repo, _ := newFixture()
	handler := catalog.NewHandler(service, nil)

	body := `{"name":"VIP Diamante","price":"49.90","category":"vips","image":"/img/vip.png"}`
	recorder := putProduct(t, handler, adminClaims(), "not-a-uuid", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "productId", envelope.Details[0].Field)

	assert.Zero(t, repo.writes)
}
