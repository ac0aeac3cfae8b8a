// Package form validates request records before they are sent to the backend.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

var (
	phonePattern      = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	localPhonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	handlePattern     = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	specialChars      = regexp.MustCompile(`[<>{}\[\]\\/]`)
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the banking tags registered:
// phone, localphone, handle and nospecial. Field names are reported using
// their json names.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "phone", matches(phonePattern))
		mustRegister(v, "localphone", matches(localPhonePattern))
		mustRegister(v, "handle", matches(handlePattern))
		mustRegister(v, "nospecial", func(fl validator.FieldLevel) bool {
			return !specialChars.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: register %s: %v", tag, err))
	}
}

// FieldError is a single human-readable field problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned by Validate; it matches domain.ErrInvalidInput.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

func (e Errors) Is(target error) bool { return target == domain.ErrInvalidInput }

// First returns the first message, or "".
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// Validate checks s against its validate tags.
func Validate(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(Errors, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldError(fe)})
	}
	return out
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	numeric := isNumeric(fe.Kind())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if numeric {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return field + " is too short"
	case "max":
		if numeric {
			return fmt.Sprintf("%s must be less than %s", field, fe.Param())
		}
		return field + " is too long"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return field + " must be a positive number"
		}
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "nefield":
		if fe.Param() == "CurrentPassword" {
			return "New password must be different from current password"
		}
		return fmt.Sprintf("%s must differ from %s", field, fe.Param())
	case "localphone":
		return field + " must be exactly 10 digits"
	case "nospecial":
		return field + " contains invalid special characters"
	case "phone", "handle", "alphanum", "numeric":
		return field + " format is invalid"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
