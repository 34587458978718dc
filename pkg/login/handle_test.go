package login

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surest/member-service/pkg/apierror"
	"github.com/surest/member-service/pkg/token"
)

func newLoginRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := NewInMemCredentialRepository("USER")
	hasher := NewBcryptHasher()
	tokens := token.NewService("test-secret", time.Hour)

	roles, err := repo.RolesByNames(context.Background(), []string{"USER"})
	require.NoError(t, err)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	_, err = repo.CreateCredential(context.Background(), CreateCredentialParams{
		Username:     "alice",
		PasswordHash: hash,
		RoleIDs:      []uuid.UUID{roles[0].ID},
	})
	require.NoError(t, err)

	return Routes(NewHandle(NewLoginService(repo, hasher, tokens)))
}

func postLogin(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpointSuccess(t *testing.T) {
	router := newLoginRouter(t)

	rec := postLogin(t, router, `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, strings.Split(resp.Token, "."), 3)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router := newLoginRouter(t)

	rec := postLogin(t, router, `{"username":"alice","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body apierror.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body.Status)
	assert.Equal(t, "invalid username or password", body.Message)
}

func TestLoginEndpointMissingFields(t *testing.T) {
	router := newLoginRouter(t)

	rec := postLogin(t, router, `{"username":"alice"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body apierror.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "password")
}

func TestLoginEndpointMalformedBody(t *testing.T) {
	router := newLoginRouter(t)

	rec := postLogin(t, router, `{"username":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
