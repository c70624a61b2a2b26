package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	errors "github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/internal/core/money"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

// AddError records a failure that was detected outside the builder, such as
// an unparseable query parameter.
func (v *ValidationBuilder) AddError(field, message string, code errors.ErrorCode) {
	v.Field(field, nil).Custom(func(interface{}) *errors.AppError {
		return errors.NewValidationFieldError(field, message, code)
	})
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.AppError {
	return errors.NewValidationFieldError(fv.FieldName, message, code)
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		msg := fmt.Sprintf("%s is required", fv.FieldName)
		switch v := value.(type) {
		case nil:
			return fv.fail(msg, errors.ErrCodeMissingParameter)
		case string:
			if strings.TrimSpace(v) == "" {
				return fv.fail(msg, errors.ErrCodeMissingParameter)
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return fv.fail(msg, errors.ErrCodeMissingParameter)
			}
		case *int:
			if v == nil {
				return fv.fail(msg, errors.ErrCodeMissingParameter)
			}
		case *int64:
			if v == nil {
				return fv.fail(msg, errors.ErrCodeMissingParameter)
			}
		case *money.Money:
			if v == nil {
				return fv.fail(msg, errors.ErrCodeMissingParameter)
			}
		}
		return nil
	})
	return fv
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case *int:
		if v != nil {
			return int64(*v), true
		}
	case *int64:
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func toString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v != nil {
			return *v, true
		}
	}
	return "", false
}

func (fv *FieldValidator) MinInt(min int64, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := toInt64(value); ok && v < min {
			return fv.fail(fmt.Sprintf("%s must be at least %d", fv.FieldName, min), code)
		}
		return nil
	})
	return fv
}

// Between checks min <= value <= max and reports both bounds in one message.
func (fv *FieldValidator) Between(min, max int64) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := toInt64(value); ok && (v < min || v > max) {
			return fv.fail(fmt.Sprintf("%s must be between %d and %d", fv.FieldName, min, max), errors.ErrCodeOutOfRange)
		}
		return nil
	})
	return fv
}

// MinLength and MaxLength count runes, not bytes.
func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := toString(value); ok && utf8.RuneCountInString(v) < min {
			return fv.fail(fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := toString(value); ok && utf8.RuneCountInString(v) > max {
			return fv.fail(fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

// OneOf accepts any string-kinded value whose text is among allowed.
func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var s string
		switch v := value.(type) {
		case nil:
			return nil
		case fmt.Stringer:
			s = v.String()
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		default:
			s = fmt.Sprint(v)
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fv.fail(fmt.Sprintf("%s must be one of: %s", fv.FieldName, strings.Join(allowed, ", ")), errors.ErrCodeInvalidEnum)
	})
	return fv
}

// URL requires an absolute http or https URL with a host.
func (fv *FieldValidator) URL() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		s, ok := toString(value)
		if !ok {
			return nil
		}
		u, err := url.ParseRequestURI(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fv.fail(fmt.Sprintf("%s must be a valid http or https URL", fv.FieldName), errors.ErrCodeInvalidURL)
		}
		return nil
	})
	return fv
}

// Amount enforces a non-negative decimal(precision,2) money value.
func (fv *FieldValidator) Amount(precision int32) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var m money.Money
		switch v := value.(type) {
		case money.Money:
			m = v
		case *money.Money:
			if v == nil {
				return nil
			}
			m = *v
		default:
			return nil
		}
		if m.IsNegative() {
			return fv.fail(fmt.Sprintf("%s must be greater than or equal to 0", fv.FieldName), errors.ErrCodeInvalidAmount)
		}
		if !m.HasScale() {
			return fv.fail(fmt.Sprintf("%s must have at most %d decimal places", fv.FieldName, money.Scale), errors.ErrCodeInvalidAmount)
		}
		if !m.FitsPrecision(precision) {
			return fv.fail(fmt.Sprintf("%s must have at most %d digits", fv.FieldName, precision), errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every rule and collects all failures into one 422 error.
// Only the first failing rule of each field is reported.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if details, ok := appErr.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, errors.ValidationError{
					Field:   field.FieldName,
					Message: appErr.Message,
					Code:    string(appErr.Code),
				})
			}
			break
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}
