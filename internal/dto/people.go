package dto

import "github.com/noah-isme/sms-console/internal/models"

// CreateTeacherRequest adds a teacher to the current school.
type CreateTeacherRequest struct {
	FirstName    string              `json:"firstName" validate:"notblank"`
	LastName     string              `json:"lastName" validate:"notblank"`
	Email        string              `json:"email" validate:"required,email"`
	Password     string              `json:"password" validate:"required,min=6"`
	Phone        string              `json:"phone,omitempty"`
	Department   string              `json:"department,omitempty"`
	Subjects     []string            `json:"subjects,omitempty"`
	Classes      []string            `json:"classes,omitempty"`
	Status       models.EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	ProfileImage string              `json:"profileImage,omitempty"`
}

// UpdateTeacherRequest is a partial teacher update.
type UpdateTeacherRequest struct {
	FirstName    models.Optional[string]              `json:"firstName"`
	LastName     models.Optional[string]              `json:"lastName"`
	Email        models.Optional[string]              `json:"email"`
	Password     models.Optional[string]              `json:"password"`
	Phone        models.Optional[string]              `json:"phone"`
	Department   models.Optional[string]              `json:"department"`
	Subjects     models.Optional[[]string]            `json:"subjects"`
	Classes      models.Optional[[]string]            `json:"classes"`
	Status       models.Optional[models.EntityStatus] `json:"status"`
	ProfileImage models.Optional[string]              `json:"profileImage"`
}

// Fields renders the supplied fields.
func (r UpdateTeacherRequest) Fields() FieldSet {
	fs := FieldSet{}
	Put(fs, "firstName", r.FirstName)
	Put(fs, "lastName", r.LastName)
	Put(fs, "email", r.Email)
	PutSecret(fs, "password", r.Password)
	Put(fs, "phone", r.Phone)
	Put(fs, "department", r.Department)
	Put(fs, "subjects", r.Subjects)
	Put(fs, "classes", r.Classes)
	Put(fs, "status", r.Status)
	Put(fs, "profileImage", r.ProfileImage)
	return fs
}

// Check validates the supplied fields.
func (r UpdateTeacherRequest) Check(c *Checker) {
	Field(c, "firstName", r.FirstName, ruleRequired)
	Field(c, "lastName", r.LastName, ruleRequired)
	Field(c, "email", r.Email, ruleEmail)
	Field(c, "password", r.Password, rulePassword)
	Field(c, "status", r.Status, ruleStatus)
}

// CreateStudentRequest adds a student to the current school.
type CreateStudentRequest struct {
	FirstName    string              `json:"firstName" validate:"notblank"`
	LastName     string              `json:"lastName" validate:"notblank"`
	Email        string              `json:"email,omitempty" validate:"omitempty,email"`
	Password     string              `json:"password" validate:"required,min=6"`
	Phone        string              `json:"phone,omitempty"`
	Class        string              `json:"class" validate:"notblank"`
	Section      string              `json:"section,omitempty"`
	RollNumber   string              `json:"rollNumber,omitempty"`
	ParentID     string              `json:"parentId,omitempty"`
	DateOfBirth  string              `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender       string              `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Address      string              `json:"address,omitempty"`
	Status       models.EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	ProfileImage string              `json:"profileImage,omitempty"`
}

// UpdateStudentRequest is a partial student update.
type UpdateStudentRequest struct {
	FirstName    models.Optional[string]              `json:"firstName"`
	LastName     models.Optional[string]              `json:"lastName"`
	Email        models.Optional[string]              `json:"email"`
	Password     models.Optional[string]              `json:"password"`
	Phone        models.Optional[string]              `json:"phone"`
	Class        models.Optional[string]              `json:"class"`
	Section      models.Optional[string]              `json:"section"`
	RollNumber   models.Optional[string]              `json:"rollNumber"`
	ParentID     models.Optional[string]              `json:"parentId"`
	DateOfBirth  models.Optional[string]              `json:"dateOfBirth"`
	Gender       models.Optional[string]              `json:"gender"`
	Address      models.Optional[string]              `json:"address"`
	Status       models.Optional[models.EntityStatus] `json:"status"`
	ProfileImage models.Optional[string]              `json:"profileImage"`
}

// Fields renders the supplied fields.
func (r UpdateStudentRequest) Fields() FieldSet {
	fs := FieldSet{}
	Put(fs, "firstName", r.FirstName)
	Put(fs, "lastName", r.LastName)
	Put(fs, "email", r.Email)
	PutSecret(fs, "password", r.Password)
	Put(fs, "phone", r.Phone)
	Put(fs, "class", r.Class)
	Put(fs, "section", r.Section)
	Put(fs, "rollNumber", r.RollNumber)
	Put(fs, "parentId", r.ParentID)
	Put(fs, "dateOfBirth", r.DateOfBirth)
	Put(fs, "gender", r.Gender)
	Put(fs, "address", r.Address)
	Put(fs, "status", r.Status)
	Put(fs, "profileImage", r.ProfileImage)
	return fs
}

// Check validates the supplied fields.
func (r UpdateStudentRequest) Check(c *Checker) {
	Field(c, "firstName", r.FirstName, ruleRequired)
	Field(c, "lastName", r.LastName, ruleRequired)
	Field(c, "class", r.Class, ruleRequired)
	Field(c, "email", r.Email, ruleOptionalEmail)
	Field(c, "password", r.Password, rulePassword)
	Field(c, "status", r.Status, ruleStatus)
}

// CreateParentRequest adds a parent and links it to students.
type CreateParentRequest struct {
	FirstName    string              `json:"firstName" validate:"notblank"`
	LastName     string              `json:"lastName" validate:"notblank"`
	Email        string              `json:"email" validate:"required,email"`
	Password     string              `json:"password" validate:"required,min=6"`
	Phone        string              `json:"phone" validate:"notblank"`
	StudentIDs   []string            `json:"studentIds,omitempty"`
	Relationship string              `json:"relationship" validate:"required,oneof=father mother guardian other"`
	Occupation   string              `json:"occupation,omitempty"`
	Address      string              `json:"address,omitempty"`
	Status       models.EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// UpdateParentRequest is a partial parent update.
type UpdateParentRequest struct {
	FirstName    models.Optional[string]              `json:"firstName"`
	LastName     models.Optional[string]              `json:"lastName"`
	Email        models.Optional[string]              `json:"email"`
	Password     models.Optional[string]              `json:"password"`
	Phone        models.Optional[string]              `json:"phone"`
	StudentIDs   models.Optional[[]string]            `json:"studentIds"`
	Relationship models.Optional[string]              `json:"relationship"`
	Occupation   models.Optional[string]              `json:"occupation"`
	Address      models.Optional[string]              `json:"address"`
	Status       models.Optional[models.EntityStatus] `json:"status"`
}

// Fields renders the supplied fields.
func (r UpdateParentRequest) Fields() FieldSet {
	fs := FieldSet{}
	Put(fs, "firstName", r.FirstName)
	Put(fs, "lastName", r.LastName)
	Put(fs, "email", r.Email)
	PutSecret(fs, "password", r.Password)
	Put(fs, "phone", r.Phone)
	Put(fs, "studentIds", r.StudentIDs)
	Put(fs, "relationship", r.Relationship)
	Put(fs, "occupation", r.Occupation)
	Put(fs, "address", r.Address)
	Put(fs, "status", r.Status)
	return fs
}

// Check validates the supplied fields.
func (r UpdateParentRequest) Check(c *Checker) {
	Field(c, "firstName", r.FirstName, ruleRequired)
	Field(c, "lastName", r.LastName, ruleRequired)
	Field(c, "phone", r.Phone, ruleRequired)
	Field(c, "email", r.Email, ruleEmail)
	Field(c, "password", r.Password, rulePassword)
	Field(c, "status", r.Status, ruleStatus)
	Field(c, "relationship", r.Relationship, "oneof=father mother guardian other")
}
