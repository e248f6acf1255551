package dto

import "github.com/noah-isme/sms-console/internal/models"

// AttendanceSettingsInput is accepted on school create and update.
type AttendanceSettingsInput struct {
	Mode                    models.AttendanceMode `json:"mode" validate:"omitempty,oneof=simple period_wise check_in_out"`
	WorkingHours            *models.WorkingHours  `json:"workingHours,omitempty"`
	LateThresholdMinutes    *int                  `json:"lateThresholdMinutes,omitempty" validate:"omitempty,min=0"`
	HalfDayThresholdMinutes *int                  `json:"halfDayThresholdMinutes,omitempty" validate:"omitempty,min=0"`
	PeriodsPerDay           *int                  `json:"periodsPerDay,omitempty" validate:"omitempty,min=1"`
}

// CreateSchoolRequest registers a tenant. Status is assigned by the platform.
type CreateSchoolRequest struct {
	SchoolName         string                   `json:"schoolName" validate:"notblank"`
	SchoolLogo         string                   `json:"schoolLogo,omitempty"`
	DBName             string                   `json:"dbName" validate:"required,dbname"`
	SchoolAddress      string                   `json:"schoolAddress,omitempty"`
	SchoolEmail        string                   `json:"schoolEmail,omitempty" validate:"omitempty,email"`
	SchoolContact      string                   `json:"schoolContact,omitempty"`
	SchoolWebsite      string                   `json:"schoolWebsite,omitempty"`
	AttendanceSettings *AttendanceSettingsInput `json:"attendanceSettings,omitempty"`
}

// UpdateSchoolRequest is a partial school update.
type UpdateSchoolRequest struct {
	SchoolName         models.Optional[string]                   `json:"schoolName"`
	SchoolLogo         models.Optional[string]                   `json:"schoolLogo"`
	Status             models.Optional[models.EntityStatus]      `json:"status"`
	SchoolAddress      models.Optional[string]                   `json:"schoolAddress"`
	SchoolEmail        models.Optional[string]                   `json:"schoolEmail"`
	SchoolContact      models.Optional[string]                   `json:"schoolContact"`
	SchoolWebsite      models.Optional[string]                   `json:"schoolWebsite"`
	AttendanceSettings models.Optional[*AttendanceSettingsInput] `json:"attendanceSettings"`
}

// Fields renders the supplied fields.
func (r UpdateSchoolRequest) Fields() FieldSet {
	fs := FieldSet{}
	Put(fs, "schoolName", r.SchoolName)
	Put(fs, "schoolLogo", r.SchoolLogo)
	Put(fs, "status", r.Status)
	Put(fs, "schoolAddress", r.SchoolAddress)
	Put(fs, "schoolEmail", r.SchoolEmail)
	Put(fs, "schoolContact", r.SchoolContact)
	Put(fs, "schoolWebsite", r.SchoolWebsite)
	Put(fs, "attendanceSettings", r.AttendanceSettings)
	return fs
}

// Check validates the supplied fields.
func (r UpdateSchoolRequest) Check(c *Checker) {
	Field(c, "schoolName", r.SchoolName, ruleRequired)
	Field(c, "schoolEmail", r.SchoolEmail, ruleOptionalEmail)
	Field(c, "status", r.Status, ruleStatus)
	if settings, ok := r.AttendanceSettings.Get(); ok && settings != nil {
		c.check("attendanceSettings.mode", string(settings.Mode), "omitempty,oneof=simple period_wise check_in_out")
	}
}

// CreateSchoolAdminRequest provisions a sch_admin account.
type CreateSchoolAdminRequest struct {
	Username      string `json:"username" validate:"notblank"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	SchoolID      string `json:"schoolId" validate:"required"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// UpdateSchoolAdminRequest is a partial school admin update.
type UpdateSchoolAdminRequest struct {
	Username      models.Optional[string]              `json:"username"`
	Email         models.Optional[string]              `json:"email"`
	Password      models.Optional[string]              `json:"password"`
	ContactNumber models.Optional[string]              `json:"contactNumber"`
	Status        models.Optional[models.EntityStatus] `json:"status"`
}

// Fields renders the supplied fields.
func (r UpdateSchoolAdminRequest) Fields() FieldSet {
	fs := FieldSet{}
	Put(fs, "username", r.Username)
	Put(fs, "email", r.Email)
	PutSecret(fs, "password", r.Password)
	Put(fs, "contactNumber", r.ContactNumber)
	Put(fs, "status", r.Status)
	return fs
}

// Check validates the supplied fields.
func (r UpdateSchoolAdminRequest) Check(c *Checker) {
	Field(c, "username", r.Username, ruleRequired)
	Field(c, "email", r.Email, ruleEmail)
	Field(c, "password", r.Password, rulePassword)
	Field(c, "status", r.Status, ruleStatus)
}
