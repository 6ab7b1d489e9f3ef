package settings

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

var (
	gpaScaleTag  = "gpascale"
	gpaScaleText = "unknown GPA scale"

	periodNameTag  = "periodname"
	periodNameText = "must be one of Semesters, Trimesters or Quarters"
)

// InitValidators registers the settings validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gpaScaleTag, gpaScaleValidation)
	core.RegisterCustomTranslation(validate, translator, gpaScaleTag, gpaScaleText)

	_ = validate.RegisterValidation(periodNameTag, periodNameValidation)
	core.RegisterCustomTranslation(validate, translator, periodNameTag, periodNameText)
}

// Custom Validators

func gpaScaleValidation(fl validator.FieldLevel) bool {
	if name, ok := fl.Field().Interface().(string); ok {
		return grading.IsKnownScale(name)
	}
	return false
}

func periodNameValidation(fl validator.FieldLevel) bool {
	if name, ok := fl.Field().Interface().(string); ok {
		for _, pn := range PeriodNames {
			if name == pn {
				return true
			}
		}
	}
	return false
}
