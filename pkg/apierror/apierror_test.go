package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(CodeValidationFailed))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(CodeUnauthorized))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(CodeInvalidCredentials))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(CodeTokenExpired))
	assert.Equal(t, http.StatusForbidden, StatusFor(CodeForbidden))
	assert.Equal(t, http.StatusNotFound, StatusFor(CodeNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(CodeAlreadyExists))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(Code("NO_SUCH_CODE")))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := NotFound("member", "abc")
	wrapped := fmt.Errorf("handling request: %w", err)

	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeAlreadyExists))
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))
	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.Equal(t, CodeInternal, GetCode(errors.New("plain")))
}

func TestRespondStructuredError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/abc", nil)
	rec := httptest.NewRecorder()

	Respond(rec, req, NotFound("member", "abc"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Status)
	assert.Equal(t, "Resource Not Found", body.Error)
	assert.Equal(t, "member not found: abc", body.Message)
	assert.Equal(t, "/api/v1/members/abc", body.Path)
	assert.NotEmpty(t, body.Timestamp)
	assert.Nil(t, body.Details)
}

func TestRespondHidesInternalCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	rec := httptest.NewRecorder()

	Respond(rec, req, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestValidationFailedDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/members", nil)
	rec := httptest.NewRecorder()

	Respond(rec, req, ValidationFailed(map[string]interface{}{
		"email": "email is required",
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "email is required", body.Details["email"])
}

func TestWithDetail(t *testing.T) {
	err := New(CodeValidationFailed, "input validation failed").
		WithDetail("sort", "unsupported sort field")
	assert.Equal(t, "unsupported sort field", err.Details["sort"])
}
