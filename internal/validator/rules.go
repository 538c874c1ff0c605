package validator

import (
	"github.com/go-playground/validator/v10"

	"creatordna_backend/internal/models"
)

func registerRules(v *validator.Validate) {
	// roletag: value must come from the role vocabulary, or use the
	// "custom:" prefix for free text.
	_ = v.RegisterValidation("roletag", func(fl validator.FieldLevel) bool {
		return models.ValidRoleTag(fl.Field().String())
	})
}
