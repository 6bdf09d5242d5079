package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"flatmates_backend/internal/models"
	"flatmates_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites_AddListRemove(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Fav Owner", helpers.UniqueEmail("favowner"), "password123")
	token, user := helpers.CreateAndLoginUser(t, ts, tx, "Fav User", helpers.UniqueEmail("favuser"), "password123")
	listing := helpers.CreateTestListing(t, tx, owner.ID, "Lovable flat", "Almaty")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/favorites/"+listing.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Saving the same listing again stays a single row.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/favorites/"+listing.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var count int64
	tx.Model(&models.UserFavorite{}).
		Where("user_id = ? AND listing_id = ?", user.ID, listing.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var page struct {
		Items []struct {
			ListingID string `json:"listing_id"`
			Listing   *struct {
				Title string `json:"title"`
			} `json:"listing"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, listing.ID, page.Items[0].ListingID)
	require.NotNil(t, page.Items[0].Listing)
	assert.Equal(t, "Lovable flat", page.Items[0].Listing.Title)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/favorites/"+listing.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	assert.EqualValues(t, 0, page.Total)
}

func TestFavorites_UnknownListing(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Ghost Fav", helpers.UniqueEmail("ghostfav"), "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/favorites/00000000-0000-0000-0000-000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/favorites/00000000-0000-0000-0000-000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)
}
