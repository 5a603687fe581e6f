package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a tagged request struct and returns per-field
// messages for every failing field, keyed by the lowercased field
// name. An empty map means the struct is valid.
func Struct(s any) map[string]any {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]any{"request": "invalid payload"}
	}

	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "oneof":
		return "invalid " + strings.ToLower(fe.Field()) + " value"
	case "email":
		return "invalid email address"
	default:
		return "invalid " + strings.ToLower(fe.Field())
	}
}
