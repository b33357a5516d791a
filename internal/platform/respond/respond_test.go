// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/respond"
)

/*
TestError_RateLimited verifies that a 429 response carries the throttle
window as a Retry-After header alongside the JSON envelope.
*/
func TestError_RateLimited(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)

	respond.Error(recorder, request, apperr.RateLimited(600))

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "600", recorder.Header().Get("Retry-After"))

	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "RATE_LIMITED", envelope.Code)
}

/*
TestError_HidesInternalCause verifies that an unexpected error is mapped to
a 500 envelope without leaking the underlying message, and that no
Retry-After header is emitted for non-throttle errors.
*/
func TestError_HidesInternalCause(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/titles", nil)

	respond.Error(recorder, request, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Retry-After"))
	assert.NotContains(t, recorder.Body.String(), "connection refused")
}
