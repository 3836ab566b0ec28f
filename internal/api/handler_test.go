package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitconnect/community/internal/models"
	"github.com/fitconnect/community/internal/service"
	"github.com/fitconnect/community/internal/storage/sqlite"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	users := service.NewUserService(store)
	groups := service.NewGroupService(store, store)
	memberships := service.NewMembershipService(store, users, groups)

	r := chi.NewRouter()
	NewHandler(users, groups, memberships).Routes(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestCreateUserEndpoint(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/users", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	// Duplicate email maps to 409.
	resp = doJSON(t, http.MethodPost, server.URL+"/users", map[string]string{
		"username": "bob",
		"email":    "a@x.com",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Malformed body maps to 400.
	req, err := http.NewRequest(http.MethodPost, server.URL+"/users", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestGetUserEndpoints(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/users", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.User
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodGet, server.URL+"/users/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/users/nonexistent-id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// By-email lookup of an unknown address is 200 with a null body.
	resp = doJSON(t, http.MethodGet, server.URL+"/users/email/ghost@x.com", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var maybeUser *models.User
	decodeBody(t, resp, &maybeUser)
	assert.Nil(t, maybeUser)

	resp = doJSON(t, http.MethodGet, server.URL+"/users/username/alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &maybeUser)
	require.NotNil(t, maybeUser)
	assert.Equal(t, created.ID, maybeUser.ID)

	resp = doJSON(t, http.MethodGet, server.URL+"/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []*models.User
	decodeBody(t, resp, &users)
	assert.Len(t, users, 1)
}

func TestGroupEndpoints(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/groups", map[string]string{
		"name":        "Runners",
		"description": "Weekend runs",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var group models.Group
	decodeBody(t, resp, &group)
	assert.Equal(t, "Runners", group.Name)

	resp = doJSON(t, http.MethodPost, server.URL+"/groups", map[string]string{"name": "Runners"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/groups/name/Runners", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/groups", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var groups []*models.Group
	decodeBody(t, resp, &groups)
	assert.Len(t, groups, 1)
}

func TestMembershipEndpoints(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/users", map[string]string{
		"username": "alice", "email": "a@x.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user models.User
	decodeBody(t, resp, &user)

	resp = doJSON(t, http.MethodPost, server.URL+"/groups", map[string]string{"name": "Runners"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var group models.Group
	decodeBody(t, resp, &group)

	// Adding a member to an unknown group is 404.
	resp = doJSON(t, http.MethodPost, server.URL+"/memberships/add-member", map[string]string{
		"userId": user.ID, "groupId": "nonexistent-group",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/memberships/add-member", map[string]string{
		"userId": user.ID, "groupId": group.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var membership models.Membership
	decodeBody(t, resp, &membership)
	assert.Equal(t, models.RoleMember, membership.Role)

	// Same pair again is 409.
	resp = doJSON(t, http.MethodPost, server.URL+"/memberships/add-member", map[string]string{
		"userId": user.ID, "groupId": group.ID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodGet,
		server.URL+"/memberships/check?userId="+user.ID+"&groupId="+group.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var check map[string]bool
	decodeBody(t, resp, &check)
	assert.True(t, check["isInGroup"])

	resp = doJSON(t, http.MethodPatch, server.URL+"/memberships/"+membership.ID+"/role",
		map[string]string{"role": "ADMIN"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet,
		server.URL+"/memberships/check-admin?userId="+user.ID+"&groupId="+group.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &check)
	assert.True(t, check["isAdmin"])

	resp = doJSON(t, http.MethodGet, server.URL+"/memberships/group/"+group.ID+"/members", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var members []*models.Membership
	decodeBody(t, resp, &members)
	require.Len(t, members, 1)

	resp = doJSON(t, http.MethodGet, server.URL+"/memberships/group/"+group.ID+"/admins", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &members)
	require.Len(t, members, 1)

	resp = doJSON(t, http.MethodGet, server.URL+"/memberships/group/"+group.ID+"/count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var count map[string]int
	decodeBody(t, resp, &count)
	assert.Equal(t, 1, count["count"])

	resp = doJSON(t, http.MethodGet, server.URL+"/memberships/user/"+user.ID+"/groups", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/memberships/remove-member", map[string]string{
		"userId": user.ID, "groupId": group.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var removed map[string]bool
	decodeBody(t, resp, &removed)
	assert.True(t, removed["success"])

	// Removing again is 404.
	resp = doJSON(t, http.MethodDelete, server.URL+"/memberships/remove-member", map[string]string{
		"userId": user.ID, "groupId": group.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Invalid role strings are rejected before the service runs.
	resp = doJSON(t, http.MethodPost, server.URL+"/memberships/add-member", map[string]string{
		"userId": user.ID, "groupId": group.ID, "role": "OWNER",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
