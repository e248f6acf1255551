package dto

import "github.com/noah-isme/sms-console/internal/models"

// FieldSet is a partial update body. Only supplied keys are sent, so the
// backend can tell "leave unchanged" apart from "clear".
type FieldSet map[string]interface{}

// Put records the field when it was supplied.
func Put[T any](fs FieldSet, key string, o models.Optional[T]) {
	if o.Set {
		fs[key] = o.Value
	}
}

// PutSecret records a secret only when it is non-empty; an empty password in
// an edit form means "unchanged".
func PutSecret(fs FieldSet, key string, o models.Optional[string]) {
	if o.Set && o.Value != "" {
		fs[key] = o.Value
	}
}

// Empty reports whether nothing would be sent.
func (fs FieldSet) Empty() bool {
	return len(fs) == 0
}
