package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Tunisian mobile numbers: +216 followed by 8 digits, first digit 2-9.
var tunisianPhoneRegex = regexp.MustCompile(`^\+216[2-9]\d{7}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("tn_phone", func(fl validator.FieldLevel) bool {
		return tunisianPhoneRegex.MatchString(fl.Field().String())
	})
}

// Validate struct fields. Returns nil when valid, otherwise field -> failed tag.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// IsTunisianPhone reports whether s is a valid Tunisian mobile number.
func IsTunisianPhone(s string) bool {
	return tunisianPhoneRegex.MatchString(s)
}
