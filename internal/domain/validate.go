package domain

import (
	platformvalidator "zylentrix_crm_backend/platform/validator"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the domain's custom validation tags on the
// shared validator. Currently only "sector".
func RegisterValidations(val *platformvalidator.Validator) error {
	return val.RegisterValidation("sector", func(fl validator.FieldLevel) bool {
		_, ok := ParseSector(fl.Field().String())
		return ok
	})
}
