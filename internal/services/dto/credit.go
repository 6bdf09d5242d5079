package dto

import (
	"time"

	"flatmates_backend/internal/models"
)

type BalanceResponse struct {
	Credits int `json:"credits"`
}

type CreditTransactionDTO struct {
	ID            string                       `json:"id"`
	Amount        int                          `json:"amount"`
	BalanceBefore int                          `json:"balance_before"`
	BalanceAfter  int                          `json:"balance_after"`
	Type          models.CreditTransactionType `json:"type"`
	Description   string                       `json:"description"`
	RelatedID     *string                      `json:"related_id,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
}

func NewCreditTransactionDTO(tx *models.CreditTransaction) CreditTransactionDTO {
	return CreditTransactionDTO{
		ID:            tx.ID,
		Amount:        tx.Amount,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Type:          tx.Type,
		Description:   tx.Description,
		RelatedID:     tx.RelatedID,
		CreatedAt:     tx.CreatedAt,
	}
}

// ContactDetails is revealed only after a successful unlock. Channels
// the owner did not enable stay empty.
type ContactDetails struct {
	OwnerName     string `json:"owner_name"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	WhatsappPhone string `json:"whatsapp_phone,omitempty"`
	Email         string `json:"email,omitempty"`
}

// UnlockContactResponse reports what the unlock did. Charged is false
// when the pair was already unlocked and no credit moved.
type UnlockContactResponse struct {
	Charged        bool           `json:"charged"`
	CreditsCharged int            `json:"credits_charged"`
	Balance        int            `json:"balance"`
	Contact        ContactDetails `json:"contact"`
}

// AccessStatusResponse answers "have I unlocked this listing?" without
// charging anything.
type AccessStatusResponse struct {
	HasAccess  bool       `json:"has_access"`
	AccessedAt *time.Time `json:"accessed_at,omitempty"`
}
