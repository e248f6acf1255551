package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sms-console/internal/models"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// Patch is implemented by partial update payloads.
type Patch interface {
	Fields() FieldSet
}

type checkedPatch interface {
	Patch
	Check(c *Checker)
}

// Checker runs the supplied fields of a patch through the shared validator
// and collects one message per field.
type Checker struct {
	v      *validator.Validate
	fields map[string]string
}

// ValidatePatch rejects empty patches and patches with invalid supplied
// fields before anything is sent.
func ValidatePatch(v *validator.Validate, p Patch, message string) error {
	if p.Fields().Empty() {
		return appErrors.Validation(message, map[string]string{"body": "no fields to update"})
	}
	checked, ok := p.(checkedPatch)
	if !ok {
		return nil
	}
	if v == nil {
		v = NewValidator()
	}
	c := &Checker{v: v, fields: map[string]string{}}
	checked.Check(c)
	if len(c.fields) > 0 {
		return appErrors.Validation(message, c.fields)
	}
	return nil
}

// Field validates o against tag when it is present. Absent fields are
// never checked; the first failure of a field wins.
func Field[T any](c *Checker, key string, o models.Optional[T], tag string) {
	value, ok := o.Get()
	if !ok {
		return
	}
	c.check(key, value, tag)
}

func (c *Checker) check(key string, value interface{}, tag string) {
	if _, done := c.fields[key]; done {
		return
	}
	err := c.v.Var(value, tag)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		c.fields[key] = describe(verrs[0])
		return
	}
	c.fields[key] = "is invalid"
}

// Fail records a rule the validator tags cannot express.
func (c *Checker) Fail(key, message string) {
	if _, done := c.fields[key]; !done {
		c.fields[key] = message
	}
}

// Shared rules for optional fields.
const (
	ruleRequired      = "notblank"
	ruleEmail         = "notblank,email"
	ruleOptionalEmail = "omitempty,email"
	rulePassword      = "omitempty,min=6"
	ruleStatus        = "oneof=active inactive"
)
