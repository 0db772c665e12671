package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"piqueunique/pkg/logger"
	"piqueunique/pkg/model"
)

var (
	phoneRegex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("lt_phone", validatePhone); err != nil {
		log.Fatal("Failed to register 'lt_phone' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// validatePhone expects an E.164 number; the sanitizer already normalized
// national Lithuanian formats into it.
func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// Validate checks a fully populated booking ahead of finalize. Every
// required field must be present; this is the "missing data" gate.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if booking.TotalPrice != booking.BasePrice+booking.AdditionalPrice {
		return ValidationErrors{
			ValidationError{
				Field:   "TotalPrice",
				Message: "total_price must equal base_price + additional_price",
			},
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if booking.Date.Before(today) {
		return ValidationErrors{
			ValidationError{
				Field:   "Date",
				Message: "date cannot be in the past",
			},
		}
	}

	return nil
}

// ValidateDraft checks only the fields the user has filled in so far.
func (v *BookingValidator) ValidateDraft(draft *model.Draft) error {
	if err := v.validate.Struct(draft); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

// ValidatePatch checks the owner-editable field subset.
func (v *BookingValidator) ValidatePatch(patch *model.BookingPatch) error {
	if err := v.validate.Struct(patch); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if patch.ContactInfo != nil {
		if err := v.validate.Struct(patch.ContactInfo); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				return v.translateValidationErrors(validationErrs)
			}
			return err
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "lt_phone":
			message = fmt.Sprintf("%s must be an international phone number (e.g., +37060012345)", err.Field())
		case "unique":
			message = fmt.Sprintf("%s must not contain duplicates", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
