// file: internals/helpers/validator.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator/v10 on a request DTO.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// ValidationErrorMap flattens validator errors into the field→messages map
// JsonValidationError expects. Field names use the json-ish snake form.
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := toSnake(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email"
		case "url":
			msg = "must be a valid URL"
		case "max":
			msg = "is too long (max " + fe.Param() + ")"
		case "oneof":
			msg = "must be one of: " + fe.Param()
		default:
			msg = "is invalid (" + fe.Tag() + ")"
		}
		out[field] = append(out[field], msg)
	}
	return out
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
