package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var barcodePattern = regexp.MustCompile(`^[A-Z]{4}\d{4}$`)

const passwordSpecialChars = "@$!%*?&"

var validate = newValidator()

// FieldErrors maps a json field name to the first rule it failed.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}

	return strings.Join(parts, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names instead of go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimals validate as float64 so the numeric rules (gte, min) apply
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	mustRegister(v, "barcode", isBarcode)
	mustRegister(v, "decimal2", hasAtMostTwoDecimals)
	mustRegister(v, "notblank", isNotBlank)
	mustRegister(v, "password", isStrongPassword)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering validation %q: %v", tag, err))
	}
}

// StructFields validates s against its `validate` tags. A failed validation
// returns FieldErrors.
func StructFields(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fieldErrors := make(FieldErrors, len(validationErrors))
	for _, fe := range validationErrors {
		if _, exists := fieldErrors[fe.Field()]; exists {
			continue
		}
		fieldErrors[fe.Field()] = message(fe)
	}

	return fieldErrors
}

// Var validates a single value against tag and returns the message of the
// first rule it failed.
func Var(field any, tag string) error {
	err := validate.Var(field, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return errors.New(message(validationErrors[0]))
	}

	return err
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "cannot be blank"
	case "barcode":
		return "must be 4 uppercase letters followed by 4 digits"
	case "password":
		return "must contain at least 4 characters, including 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character"
	case "decimal2":
		return "must have at most 2 decimal places"
	case "email":
		return "invalid email format"
	case "alphanum":
		return "must contain only letters and digits"
	case "min", "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func isBarcode(fl validator.FieldLevel) bool {
	return barcodePattern.MatchString(fl.Field().String())
}

// hasAtMostTwoDecimals matches the NUMERIC(12,2) money columns. Decimals
// reach it as float64 through decimalValue.
func hasAtMostTwoDecimals(fl validator.FieldLevel) bool {
	var d decimal.Decimal

	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		d = decimal.NewFromFloat(fl.Field().Float())
	case reflect.String:
		var err error
		if d, err = decimal.NewFromString(fl.Field().String()); err != nil {
			return false
		}
	default:
		return false
	}

	return d.Equal(d.Truncate(2))
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 4 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r) && r < unicode.MaxASCII:
			hasUpper = true
		case unicode.IsLower(r) && r < unicode.MaxASCII:
			hasLower = true
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		default:
			return false
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}

	return nil
}
