package models

type UserStatus string
type ListingStatus string
type PropertyType string
type GenderPreference string
type ReferralStatus string
type CreditTransactionType string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	ListingStatusActive   ListingStatus = "active"
	ListingStatusInactive ListingStatus = "inactive"
	ListingStatusRented   ListingStatus = "rented"
	ListingStatusExpired  ListingStatus = "expired"

	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypeSharedRoom PropertyType = "shared_room"
	PropertyTypePG         PropertyType = "pg"

	GenderPreferenceAny    GenderPreference = "any"
	GenderPreferenceMale   GenderPreference = "male"
	GenderPreferenceFemale GenderPreference = "female"

	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusCompleted ReferralStatus = "completed"
	// Schema supports "expired" but no code path sets it yet; kept for
	// parity with the stored data.
	ReferralStatusExpired ReferralStatus = "expired"

	CreditTxSignupBonus     CreditTransactionType = "signup_bonus"
	CreditTxContactUnlock   CreditTransactionType = "contact_unlock"
	CreditTxReferralReward  CreditTransactionType = "referral_reward"
	CreditTxAdminAdjustment CreditTransactionType = "admin_adjustment"
)
