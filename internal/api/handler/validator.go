package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// bracketPattern matches range answers such as "0-1,00,000" and
// "1,00,00,000 and above".
var bracketPattern = regexp.MustCompile(`^\d[\d,]*\s*(-\s*\d[\d,]*|\s+and\s+above)$`)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAmount(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("bracket", func(fl validator.FieldLevel) bool {
		return bracketPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("yesno", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "Yes" || s == "No"
	})
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("intmin", intBound(func(n, bound int) bool { return n >= bound }))
	_ = v.RegisterValidation("intmax", intBound(func(n, bound int) bool { return n <= bound }))
	return &echoValidator{v: v}
}

// intBound compares a numeric string field against the tag parameter.
// Non-numeric values are left to the "integer" tag.
func intBound(ok func(n, bound int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		if err != nil {
			return true
		}
		bound, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return ok(n, bound)
	}
}

// Validate satisfies the echo.Validator interface. Every failed rule is
// reported, not only the first one.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]domain.FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, domain.FieldError{Field: fe.Field(), Message: fieldError(fe)})
			}
			return domain.NewValidationError(fields...)
		}
		return err
	}
	return nil
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "integer":
		return field + " must be a whole number"
	case "intmin":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "intmax":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "amount":
		return field + " must be a non-negative amount"
	case "bracket":
		return field + ` must be a range like "0-10,000" or "1,00,000 and above"`
	case "yesno":
		return field + " must be Yes or No"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
