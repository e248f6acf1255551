package dto

import "github.com/noah-isme/sms-console/internal/models"

// SectionInput names a section and optionally its class teacher.
type SectionInput struct {
	Name           string `json:"name" validate:"notblank"`
	ClassTeacherID string `json:"classTeacherId,omitempty"`
}

// CreateClassRequest adds a class with optional initial sections.
type CreateClassRequest struct {
	Name        string         `json:"name" validate:"notblank"`
	Description string         `json:"description,omitempty"`
	Sections    []SectionInput `json:"sections,omitempty" validate:"dive"`
}

// UpdateClassRequest is a partial class update.
type UpdateClassRequest struct {
	Name        models.Optional[string]              `json:"name"`
	Description models.Optional[string]              `json:"description"`
	Status      models.Optional[models.EntityStatus] `json:"status"`
}

// Fields renders the supplied fields.
func (r UpdateClassRequest) Fields() FieldSet {
	fs := FieldSet{}
	Put(fs, "name", r.Name)
	Put(fs, "description", r.Description)
	Put(fs, "status", r.Status)
	return fs
}

// Check validates the supplied fields.
func (r UpdateClassRequest) Check(c *Checker) {
	Field(c, "name", r.Name, ruleRequired)
	Field(c, "status", r.Status, ruleStatus)
}

// AssignClassTeacherRequest sets or clears (nil) a section's class teacher.
type AssignClassTeacherRequest struct {
	TeacherID *string `json:"teacherId"`
}

// CreateSubjectRequest adds a subject.
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"notblank"`
	Code        string `json:"code" validate:"notblank,max=10"`
	Description string `json:"description,omitempty"`
}

// UpdateSubjectRequest is a partial subject update.
type UpdateSubjectRequest struct {
	Name        models.Optional[string]              `json:"name"`
	Code        models.Optional[string]              `json:"code"`
	Description models.Optional[string]              `json:"description"`
	Status      models.Optional[models.EntityStatus] `json:"status"`
}

// Fields renders the supplied fields.
func (r UpdateSubjectRequest) Fields() FieldSet {
	fs := FieldSet{}
	Put(fs, "name", r.Name)
	Put(fs, "code", r.Code)
	Put(fs, "description", r.Description)
	Put(fs, "status", r.Status)
	return fs
}

// Check validates the supplied fields.
func (r UpdateSubjectRequest) Check(c *Checker) {
	Field(c, "name", r.Name, ruleRequired)
	Field(c, "code", r.Code, "notblank,max=10")
	Field(c, "status", r.Status, ruleStatus)
}
