package validation

import (
	"fmt"
	"regexp"
	"strings"

	errors "github.com/mudithakuruppu/employeemanagement-ui/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

// ValidationBuilder runs each field's validators in order and records at most
// one error per field: the first rule that fails.
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

// Required rejects strings that are empty once surrounding whitespace is trimmed.
func (fv *FieldValidator) Required(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return errors.NewValidationFieldError(fv.FieldName, fv.message(message, "%s is required"), errors.ErrCodeRequired)
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return errors.NewValidationFieldError(fv.FieldName, fv.message(message, "%s is required"), errors.ErrCodeRequired)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Matches(pattern *regexp.Regexp, message string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if !pattern.MatchString(v) {
				return errors.NewValidationFieldError(fv.FieldName, fv.message(message, "%s has an invalid format"), code)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int, message string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if len([]rune(v)) > max {
				fallback := fmt.Sprintf("%%s must not exceed %d characters", max)
				return errors.NewValidationFieldError(fv.FieldName, fv.message(message, fallback), code)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed []string, message string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v := fmt.Sprint(value)
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return errors.NewValidationFieldError(fv.FieldName, fv.message(message, "%s is not an allowed value"), code)
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (fv *FieldValidator) message(explicit, format string) string {
	if explicit != "" {
		return explicit
	}
	return fmt.Sprintf(format, fv.FieldName)
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			err := validator(field.Value)
			if err == nil {
				continue
			}
			if details, ok := err.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, errors.ValidationError{
					Field:   field.FieldName,
					Message: err.Message,
					Code:    string(err.Code),
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
