package validator

import (
	"log"

	"flatmates_backend/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterGinValidations installs the custom rules on gin's binding
// engine so `binding` tags can use them. Safe to call more than once.
func RegisterGinValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomRules(v)
	}
}

// registerCustomRules registers the domain enum rules on the validator
// instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-listing-status", validateListingStatus)
	mustRegister("is-property-type", validatePropertyType)
	mustRegister("is-gender-preference", validateGenderPreference)
}

func validateListingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}

	switch models.ListingStatus(value) {
	case models.ListingStatusActive,
		models.ListingStatusInactive,
		models.ListingStatusRented,
		models.ListingStatusExpired:
		return true
	}
	return false
}

func validatePropertyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.PropertyType(value) {
	case models.PropertyTypeApartment,
		models.PropertyTypeHouse,
		models.PropertyTypeStudio,
		models.PropertyTypeSharedRoom,
		models.PropertyTypePG:
		return true
	}
	return false
}

func validateGenderPreference(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.GenderPreference(value) {
	case models.GenderPreferenceAny,
		models.GenderPreferenceMale,
		models.GenderPreferenceFemale:
		return true
	}
	return false
}
