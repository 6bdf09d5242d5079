package models

import "time"

// UserCredits is the authoritative balance row, exactly one per user.
// The row is created lazily with the configured starting balance on the
// first balance read. The CHECK constraint is the hard floor: no code
// path may drive the balance negative, and a racing decrement that
// would do so fails at the database.
type UserCredits struct {
	BaseModel
	UserID  string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Credits int    `gorm:"not null;default:0;check:credits >= 0" json:"credits"`
}

// CreditTransaction is the append-only audit trail. Every balance
// mutation writes exactly one row in the same database transaction, so
// the trail cannot disagree with the ledger.
type CreditTransaction struct {
	BaseModel
	UserID        string                `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        int                   `gorm:"not null" json:"amount"` // signed: negative for spend
	BalanceBefore int                   `gorm:"not null" json:"balance_before"`
	BalanceAfter  int                   `gorm:"not null" json:"balance_after"`
	Type          CreditTransactionType `gorm:"type:varchar(30);not null" json:"type"`
	Description   string                `json:"description"`
	RelatedID     *string               `gorm:"type:uuid" json:"related_id,omitempty"` // listing or referral id
}

// Referral tracks one referred email for one referrer. The same email
// may be referred by different referrers; the (referrer, email) pair is
// unique.
type Referral struct {
	BaseModel
	ReferrerID     string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_referrer_email" json:"referrer_id"`
	ReferredEmail  string         `gorm:"not null;uniqueIndex:idx_referrer_email" json:"referred_email"`
	ReferredUserID *string        `gorm:"type:uuid" json:"referred_user_id,omitempty"`
	Status         ReferralStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ReferralCode   string         `gorm:"not null;uniqueIndex" json:"referral_code"`
	CreditsAwarded int            `gorm:"default:0" json:"credits_awarded"`
}

// ContactAccessLog records one successful unlock per (user, listing)
// pair. The pair unique index is the authoritative "already unlocked"
// signal and the guard against double charging: a second insert for the
// same pair fails, rolling back the racing decrement with it.
type ContactAccessLog struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_listing" json:"user_id"`
	ListingID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_listing" json:"listing_id"`
	AccessedAt  time.Time `gorm:"default:now()" json:"accessed_at"`
	CreditsUsed int       `gorm:"not null;default:1" json:"credits_used"`
}

// UserFavorite is a saved listing; toggling twice removes it.
type UserFavorite struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_favorite" json:"user_id"`
	ListingID string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_favorite" json:"listing_id"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`

	Listing *FlatListing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}
