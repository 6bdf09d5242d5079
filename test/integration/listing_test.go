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

func TestCreateListing_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginUser(t, ts, tx, "Lister", helpers.UniqueEmail("lister"), "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/listings", token, map[string]interface{}{
		"title":         "Sunny 2BR with balcony",
		"description":   "Top floor, quiet street",
		"address_line1": "5 Dostyk Ave",
		"city":          "Almaty",
		"area":          "Medeu",
		"property_type": "apartment",
		"bedrooms":      2,
		"bathrooms":     1,
		"monthly_rent":  180000,
		"amenities":     []string{"wifi", "washing_machine"},
		"contact_email": true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var listing struct {
		ID              string   `json:"id"`
		OwnerID         string   `json:"owner_id"`
		Status          string   `json:"status"`
		PreferredGender string   `json:"preferred_gender"`
		Amenities       []string `json:"amenities"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &listing))
	assert.Equal(t, user.ID, listing.OwnerID)
	assert.Equal(t, "active", listing.Status)
	assert.Equal(t, "any", listing.PreferredGender)
	assert.Equal(t, []string{"wifi", "washing_machine"}, listing.Amenities)
}

func TestCreateListing_ValidationFailure(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "Bad Lister", helpers.UniqueEmail("badlister"), "password123")

	// Bad property type and missing rent.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/listings", token, map[string]interface{}{
		"title":         "Mystery dwelling",
		"address_line1": "1 Nowhere St",
		"city":          "Almaty",
		"property_type": "castle",
		"bedrooms":      2,
		"bathrooms":     1,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestGetListing_IncrementsViewCount(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "View Owner", helpers.UniqueEmail("viewowner"), "password123")
	listing := helpers.CreateTestListing(t, tx, owner.ID, "Counted flat", "Almaty")

	for i := 0; i < 2; i++ {
		res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/"+listing.ID, "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	}

	var row models.FlatListing
	require.NoError(t, tx.First(&row, "id = ?", listing.ID).Error)
	assert.Equal(t, 2, row.ViewCount)
}

func TestSearchListings_Filters(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Search Owner", helpers.UniqueEmail("searchowner"), "password123")

	cheap := helpers.CreateTestListing(t, tx, owner.ID, "Cheap studio Aktau", "Aktau")
	require.NoError(t, tx.Model(cheap).Updates(map[string]interface{}{
		"property_type": models.PropertyTypeStudio,
		"monthly_rent":  60000,
		"bedrooms":      1,
	}).Error)

	expensive := helpers.CreateTestListing(t, tx, owner.ID, "Premium flat Aktau", "Aktau")
	require.NoError(t, tx.Model(expensive).Update("monthly_rent", 400000).Error)

	inactive := helpers.CreateTestListing(t, tx, owner.ID, "Hidden flat Aktau", "Aktau")
	require.NoError(t, tx.Model(inactive).Update("status", models.ListingStatusRented).Error)

	// Rent ceiling keeps only the studio; the rented one never shows.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/search?city=Aktau&max_rent=100000", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var page struct {
		Items []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, cheap.ID, page.Items[0].ID)

	// Property type filter.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/search?city=Aktau&property_type=studio", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, cheap.ID, page.Items[0].ID)

	// Contradictory range is rejected.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/search?min_rent=500000&max_rent=100000", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestSearchListings_FurnishedAndFreeText(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Filter Owner", helpers.UniqueEmail("filterowner"), "password123")

	furnished := helpers.CreateTestListing(t, tx, owner.ID, "Furnished loft with balcony", "Taraz")
	require.NoError(t, tx.Model(furnished).Update("is_furnished", true).Error)

	bare := helpers.CreateTestListing(t, tx, owner.ID, "Bare room", "Taraz")
	require.NoError(t, tx.Model(bare).Update("address_line1", "7 Panfilov Street").Error)

	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int64 `json:"total"`
	}

	// Furnished flag filters on the stored column.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/search?city=Taraz&furnished=true", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, furnished.ID, page.Items[0].ID)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/search?city=Taraz&furnished=false", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, bare.ID, page.Items[0].ID)

	// Free text matches titles.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/search?city=Taraz&q=balcony", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, furnished.ID, page.Items[0].ID)

	// And the first address line.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/search?city=Taraz&q=panfilov", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, bare.ID, page.Items[0].ID)
}

func TestUpdateListing_OnlyOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "Real Owner", helpers.UniqueEmail("realowner"), "password123")
	intruderToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "Intruder", helpers.UniqueEmail("intruder"), "password123")
	listing := helpers.CreateTestListing(t, tx, owner.ID, "Guarded flat", "Almaty")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/listings/"+listing.ID, intruderToken, map[string]interface{}{
		"title": "Hijacked title here",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)

	var row models.FlatListing
	require.NoError(t, tx.First(&row, "id = ?", listing.ID).Error)
	assert.Equal(t, "Guarded flat", row.Title)
}

func TestUpdateListingStatus(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Status Changer", helpers.UniqueEmail("statuschanger"), "password123")
	listing := helpers.CreateTestListing(t, tx, owner.ID, "Soon rented", "Almaty")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/listings/"+listing.ID+"/status", ownerToken, map[string]interface{}{
		"status": "rented",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var row models.FlatListing
	require.NoError(t, tx.First(&row, "id = ?", listing.ID).Error)
	assert.Equal(t, models.ListingStatusRented, row.Status)

	// Rented listings drop out of the public feed.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/"+listing.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"rented"`)
}

func TestMyListings(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Multi Owner", helpers.UniqueEmail("multiowner"), "password123")
	_, other := helpers.CreateAndLoginUser(t, ts, tx, "Other Owner", helpers.UniqueEmail("otherowner"), "password123")

	helpers.CreateTestListing(t, tx, owner.ID, "Mine one", "Almaty")
	helpers.CreateTestListing(t, tx, owner.ID, "Mine two", "Almaty")
	helpers.CreateTestListing(t, tx, other.ID, "Not mine", "Almaty")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/my", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	assert.EqualValues(t, 2, page.Total)
	assert.NotContains(t, bodyStr, "Not mine")
}

func TestDeleteListing(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "Deleter", helpers.UniqueEmail("deleter"), "password123")
	listing := helpers.CreateTestListing(t, tx, owner.ID, "Doomed flat", "Almaty")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/listings/"+listing.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/listings/"+listing.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)
}
