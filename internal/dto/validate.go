package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

var dbNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// NewValidator returns a validator that reports fields by their JSON names
// and knows the console specific tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("dbname", func(fl validator.FieldLevel) bool {
		return dbNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks payload and converts failures into a field-scoped
// validation error.
func Validate(v *validator.Validate, payload interface{}, message string) error {
	if v == nil {
		v = NewValidator()
	}
	err := v.Struct(payload)
	if err == nil {
		if checked, ok := payload.(interface{ Check(c *Checker) }); ok {
			c := &Checker{v: v, fields: map[string]string{}}
			checked.Check(c)
			if len(c.fields) > 0 {
				return appErrors.Validation(message, c.fields)
			}
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return appErrors.Validation(message, fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "invalid email format"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be " + fe.Param() + " characters or less"
	case "oneof":
		return "must be one of " + fe.Param()
	case "dbname":
		return "only lowercase letters, numbers, and hyphens allowed"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
