package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marslanding/backend/internal/auth"
	"github.com/marslanding/backend/internal/model"
)

func (env *testEnv) accessFor(t *testing.T, u *model.User) string {
	t.Helper()
	tok, err := env.tokens.Issue(u.HexID(), auth.TokenAccess, time.Now().UTC())
	require.NoError(t, err)
	return tok
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/users",
		`{"email":"a@x.com","full_name":"A","password":"longenough1"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "A", body["full_name"])
	assert.Equal(t, true, body["is_active"])
	assert.Equal(t, false, body["is_superuser"])
	assert.NotEmpty(t, body["id"])

	// No password material in any form.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hashed_password")
}

func TestCreateUserDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com", "longenough1")

	rec := env.do(http.MethodPost, "/api/v1/users",
		`{"email":"a@x.com","full_name":"B","password":"longenough2"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/users",
		`{"email":"a@x.com","full_name":"A","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "a@x.com", "longenough1")

	rec := env.do(http.MethodGet, "/api/v1/users/me", "", env.accessFor(t, u))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, u.HexID(), body["id"])
	assert.NotContains(t, body, "hashed_password")
}

func TestMeWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateMe(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "a@x.com", "longenough1")

	rec := env.do(http.MethodPut, "/api/v1/users/me",
		`{"full_name":"Renamed"}`, env.accessFor(t, u))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Renamed", body["full_name"])
	assert.Equal(t, "a@x.com", body["email"])
}

func TestUpdateMePassword(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "a@x.com", "longenough1")

	rec := env.do(http.MethodPut, "/api/v1/users/me",
		`{"password":"newpassword1"}`, env.accessFor(t, u))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := env.svc.Authenticate(context.Background(), "a@x.com", "newpassword1")
	assert.NoError(t, err)
	_, err = env.svc.Authenticate(context.Background(), "a@x.com", "longenough1")
	assert.Error(t, err)
}

func TestGetUserByIDSelfOnly(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "a@x.com", "longenough1")
	b := env.register(t, "b@x.com", "longenough2")

	// Self access works.
	rec := env.do(http.MethodGet, "/api/v1/users/"+a.HexID(), "", env.accessFor(t, a))
	assert.Equal(t, http.StatusOK, rec.Code)

	// A plain user cannot read someone else's account.
	rec = env.do(http.MethodGet, "/api/v1/users/"+b.HexID(), "", env.accessFor(t, a))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUserByIDSuperuser(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "a@x.com", "longenough1")
	super := env.register(t, "admin@x.com", "longenough2")

	// Promote directly in the fake store; registration never does this.
	env.users.mu.Lock()
	env.users.byID[super.HexID()].IsSuperuser = true
	env.users.mu.Unlock()

	rec := env.do(http.MethodGet, "/api/v1/users/"+a.HexID(), "", env.accessFor(t, super))
	assert.Equal(t, http.StatusOK, rec.Code)
}
