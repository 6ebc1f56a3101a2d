package shared

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Contract status values.
const (
	StatusSigned    = "Signed"
	StatusNotSigned = "Not Signed"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the process-wide validator with the CRM rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("contract_status", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == StatusSigned || s == StatusNotSigned
		})
		_ = v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
			return PasswordStrong(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidateStruct runs struct tag validation and reports the first failure as a ValidationError.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: describeTag(fe)}
}

// PasswordStrong requires eight characters with upper, lower and digit.
func PasswordStrong(p string) bool {
	if len(p) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "contract_status":
		return "must be one of 'Signed' or 'Not Signed'"
	case "strong_password":
		return "must be at least 8 characters with an uppercase letter, a lowercase letter and a digit"
	case "ltefield":
		return "must not exceed " + snakeCase(fe.Param())
	case "gtefield":
		return "must not be before " + snakeCase(fe.Param())
	case "excludesall":
		return "must not contain spaces"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
