package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"flatmates_backend/internal/models"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := helpers.UniqueEmail("register")
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     email,
		"password":  "password123",
		"full_name": "New Tenant",
		"city":      "Almaty",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var resp authResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, email, resp.User.Email)

	// A profile and the starting balance came with the account.
	var profile models.Profile
	require.NoError(t, tx.Where("user_id = ?", resp.User.ID).First(&profile).Error)
	assert.Equal(t, "New Tenant", profile.FullName)
	assert.Equal(t, 10, helpers.GetCredits(t, tx, resp.User.ID))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := helpers.UniqueEmail("duplicate")
	body := map[string]interface{}{
		"email":     email,
		"password":  "password123",
		"full_name": "First In",
		"city":      "Almaty",
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     helpers.UniqueEmail("weak"),
		"password":  "short",
		"full_name": "Weak Password",
		"city":      "Almaty",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := helpers.UniqueEmail("wrongpass")
	helpers.CreateAndLoginUser(t, ts, tx, "Wrong Pass", email, "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "INVALID_CREDENTIALS")
}

func TestRefreshToken_RotatesAndInvalidatesOld(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := helpers.UniqueEmail("refresh")
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     email,
		"password":  "password123",
		"full_name": "Refresher",
		"city":      "Almaty",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var registered authResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &registered))

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": registered.RefreshToken,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var refreshed authResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The consumed token no longer works.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": registered.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := helpers.UniqueEmail("changepass")
	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Changer", email, "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/change-password", token, map[string]interface{}{
		"current_password": "password123",
		"new_password":     "even-better-password",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Old password is dead, new one works.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "even-better-password",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/credits/balance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/credits/balance", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
}

func TestCleanExpiredRefreshTokens_KeepsLiveSessions(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "Token Holder", helpers.UniqueEmail("tokens"), "password123")

	repo := repositories.NewUserRepository()
	expired := &models.RefreshToken{UserID: user.ID, Token: "expired-" + user.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	live := &models.RefreshToken{UserID: user.ID, Token: "live-" + user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.CreateRefreshToken(tx, expired))
	require.NoError(t, repo.CreateRefreshToken(tx, live))

	require.NoError(t, repo.CleanExpiredRefreshTokens(tx))

	_, err := repo.FindRefreshToken(tx, expired.Token)
	assert.ErrorIs(t, err, repositories.ErrTokenNotFound)

	found, err := repo.FindRefreshToken(tx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
}
