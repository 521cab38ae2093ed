package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"e-shopping/internal/domain"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports fields under their json name, the one API clients send
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	// normemail accepts what NormalizeEmail turns into a valid address
	_ = v.RegisterValidation("normemail", func(fl validator.FieldLevel) bool {
		return v.Var(domain.NormalizeEmail(fl.Field().String()), "email") == nil
	})
	return v
}

// ValidationError is one rejected field of a request body
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DecodeAndValidate reads a JSON body into v and checks its validate tags.
// Decode failures come back as-is, so callers can tell them apart with
// FormatValidationErrors.
func DecodeAndValidate(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return validate.Struct(v)
}

// FormatValidationErrors flattens validator errors into field messages.
// Anything else yields nil.
func FormatValidationErrors(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email", "normemail":
		return "Invalid email format"
	case "oneof":
		return "Value must be one of: " + param
	case "url":
		return "Invalid URL"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gte":
		return "Value must be greater than or equal to " + param
	case "lte":
		return "Value must be less than or equal to " + param
	}
	return "Invalid value"
}
