package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"flatmates_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginUser(t, ts, tx, "Profile Reader", helpers.UniqueEmail("profreader"), "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/profiles/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Profile Reader")
	assert.Contains(t, bodyStr, user.ID)
}

func TestUpdateMyProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Profile Editor", helpers.UniqueEmail("profeditor"), "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/profiles/me", token, map[string]interface{}{
		"bio":        "Tidy, works remotely, no pets",
		"profession": "Software Engineer",
		"age":        29,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var profile struct {
		FullName   string `json:"full_name"`
		Bio        string `json:"bio"`
		Profession string `json:"profession"`
		Age        int    `json:"age"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &profile))

	// Untouched fields survive a partial update.
	assert.Equal(t, "Profile Editor", profile.FullName)
	assert.Equal(t, "Tidy, works remotely, no pets", profile.Bio)
	assert.Equal(t, "Software Engineer", profile.Profession)
	assert.Equal(t, 29, profile.Age)
}

func TestUpdateMyProfile_ValidationFailure(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Young Editor", helpers.UniqueEmail("youngeditor"), "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/profiles/me", token, map[string]interface{}{
		"age": 5,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestGetPublicProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "Public Person", helpers.UniqueEmail("publicperson"), "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/profiles/"+user.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Public Person")
}
