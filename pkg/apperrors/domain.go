package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the domain errors of the
flatmates marketplace: auth, listings, and the credits/referral economy.
*/

// =========================================================================
// Factory functions (wrap repository errors)
// =========================================================================

// ErrNotFound converts a repository not-found error into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation creates a 400 for operations the domain forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus creates a 400 for disallowed status transitions.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Predefined variables (frequent, static errors)
// =========================================================================

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"An account with this email already exists",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Refresh token is invalid or expired",
	http.StatusUnauthorized,
)

// --- Listings ---

var ErrNotListingOwner = New(
	CodeForbidden,
	"listings",
	"Only the listing owner may perform this operation",
	http.StatusForbidden,
)

// --- Credits economy ---

// ErrInsufficientCredits: the balance is zero at charge time. The user
// recovers by completing referrals, so 402 rather than 403.
var ErrInsufficientCredits = New(
	CodeInsufficientCredits,
	"credits",
	"Not enough credits to unlock contact details",
	http.StatusPaymentRequired,
)

// ErrDuplicateReferral: the referrer already referred this email.
var ErrDuplicateReferral = New(
	CodeDuplicateReferral,
	"referrals",
	"You have already referred this email address",
	http.StatusConflict,
)

// ErrSelfReferral: the referred email belongs to the referrer.
var ErrSelfReferral = New(
	CodeSelfReferral,
	"referrals",
	"You cannot refer your own email address",
	http.StatusBadRequest,
)

var ErrInvalidReferralCode = New(
	CodeInvalidReferralCode,
	"referrals",
	"Referral code not found",
	http.StatusNotFound,
)
