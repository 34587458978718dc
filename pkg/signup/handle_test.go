package signup

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surest/member-service/pkg/apierror"
	"github.com/surest/member-service/pkg/login"
)

func newSignupRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := login.NewInMemCredentialRepository("USER", "ADMIN")
	return Routes(NewHandle(NewService(repo, login.NewBcryptHasher())))
}

func postRegister(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	router := newSignupRouter(t)

	rec := postRegister(t, router, `{"username":"bob","password":"secret2","roles":["USER","ADMIN"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bob", resp.Username)
	assert.ElementsMatch(t, []string{"USER", "ADMIN"}, resp.Roles)
	assert.NotEmpty(t, resp.UserID)
	assert.NotContains(t, rec.Body.String(), "secret2")
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	router := newSignupRouter(t)

	rec := postRegister(t, router, `{"username":"bob","password":"secret2","roles":["USER"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postRegister(t, router, `{"username":"bob","password":"other","roles":["USER"]}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body apierror.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CONFLICT", body.Status)
}

func TestRegisterEndpointMissingFields(t *testing.T) {
	router := newSignupRouter(t)

	rec := postRegister(t, router, `{"username":"","password":"","roles":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body apierror.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "username")
	assert.Contains(t, body.Details, "password")
	assert.Contains(t, body.Details, "roles")
}

func TestRegisterEndpointUnknownRole(t *testing.T) {
	router := newSignupRouter(t)

	rec := postRegister(t, router, `{"username":"dave","password":"secret4","roles":["SUPERUSER"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
