package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"flatmates_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user directly, hashing the raw password placed
// in PasswordHash.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	if user.PasswordHash != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "failed to hash password")
		user.PasswordHash = string(hashed)
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.IsVerified = true

	require.NoError(t, db.Create(user).Error, "failed to create test user")
}

// CreateAndLoginUser creates a user with a profile and logs in through
// the API, returning the access token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, fullName, email, password string) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password,
	}
	CreateUser(t, tx, user)

	profile := &models.Profile{
		UserID:      user.ID,
		FullName:    fullName,
		PhoneNumber: "+77001234567",
		City:        "Almaty",
	}
	require.NoError(t, tx.Create(profile).Error, "failed to create test profile")
	user.Profile = profile

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// UniqueEmail returns an address that cannot collide across parallel
// tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// CreateTestListing inserts an active listing owned by ownerID.
func CreateTestListing(t *testing.T, tx *gorm.DB, ownerID, title, city string) *models.FlatListing {
	listing := &models.FlatListing{
		OwnerID:      ownerID,
		Title:        title,
		Description:  "Bright two-bedroom close to the metro",
		Status:       models.ListingStatusActive,
		AddressLine1: "12 Abay Ave",
		City:         city,
		PropertyType: models.PropertyTypeApartment,
		Bedrooms:     2,
		Bathrooms:    1,
		MonthlyRent:  150000,
		ContactPhone: true,
		ContactEmail: true,
	}
	require.NoError(t, tx.Create(listing).Error, "failed to create test listing")
	return listing
}

// SetCredits pins a user's balance to an exact value, creating the row
// if needed.
func SetCredits(t *testing.T, tx *gorm.DB, userID string, credits int) {
	var row models.UserCredits
	err := tx.Where("user_id = ?", userID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		row = models.UserCredits{UserID: userID, Credits: credits}
		require.NoError(t, tx.Create(&row).Error)
		return
	}
	require.NoError(t, err)
	require.NoError(t, tx.Model(&row).Update("credits", credits).Error)
}

// GetCredits reads the raw balance, 0 when no row exists yet.
func GetCredits(t *testing.T, tx *gorm.DB, userID string) int {
	var row models.UserCredits
	err := tx.Where("user_id = ?", userID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return row.Credits
}
