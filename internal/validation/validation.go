package validation

import (
	"fmt"
	"reflect"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRules installs the custom binding rules on gin's validator engine.
// Call once at startup, before any request is bound.
func RegisterRules() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("password", strongPassword)
	}
}

// strongPassword enforces minimum length 8 with at least one lowercase, one
// uppercase and one symbol.
func strongPassword(fl validator.FieldLevel) bool {
	var length int
	var lower, upper, symbol bool
	for _, r := range fl.Field().String() {
		length++
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
		default:
			symbol = true
		}
	}
	return length >= 8 && lower && upper && symbol
}

// Messages flattens a binding error into the field messages carried by 422
// responses. Every violation is reported, not just the first.
func Messages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"Invalid request body"}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, message(fe))
	}
	return messages
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "oneof":
		return "Invalid role"
	case "password":
		return "Password must have minLength: 8, minLowercase: 1, minUppercase: 1, minSymbols: 1"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s should be at least %s chars long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
