package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormValidator checks form input client-side before any network call and
// turns validation failures into messages fit for direct display.
type FormValidator struct {
	v *validator.Validate
}

func NewFormValidator() *FormValidator {
	return &FormValidator{v: validator.New()}
}

func (fv *FormValidator) Validate(i any) error {
	if err := fv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "numeric":
		return field + " must be numeric"
	case "credit_card":
		return field + " is not a valid card number"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
