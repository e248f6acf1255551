package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/models"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

func TestUpdatePayloadOmitsAbsentFields(t *testing.T) {
	var req UpdateTeacherRequest
	require.NoError(t, json.Unmarshal([]byte(`{"phone":"","department":"Science"}`), &req))

	fields := req.Fields()
	assert.Equal(t, FieldSet{"phone": "", "department": "Science"}, fields)
	assert.NotContains(t, fields, "firstName")
}

func TestUpdatePayloadDropsEmptyPassword(t *testing.T) {
	req := UpdateSchoolAdminRequest{
		Username: models.Some("admin"),
		Password: models.Some(""),
	}
	assert.Equal(t, FieldSet{"username": "admin"}, req.Fields())

	req.Password = models.Some("secret1")
	assert.Equal(t, "secret1", req.Fields()["password"])
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(NewValidator(), CreateSchoolAdminRequest{
		Username: " ",
		Email:    "not-an-email",
		Password: "123",
	}, "invalid school admin payload")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "is required", appErr.Fields["username"])
	assert.Equal(t, "invalid email format", appErr.Fields["email"])
	assert.Equal(t, "must be at least 6 characters", appErr.Fields["password"])
	assert.Equal(t, "is required", appErr.Fields["schoolId"])
}

func TestValidateSchoolDBName(t *testing.T) {
	v := NewValidator()
	ok := CreateSchoolRequest{SchoolName: "Lincoln High", DBName: "lincoln-high"}
	assert.NoError(t, Validate(v, ok, "invalid school payload"))

	bad := ok
	bad.DBName = "Lincoln_High"
	err := Validate(v, bad, "invalid school payload")
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Fields, "dbName")
}

func TestValidateRunsPayloadChecks(t *testing.T) {
	err := Validate(NewValidator(), CreateRequestRequest{
		UserType:    "teacher",
		UserID:      "t-1",
		RequestType: "email_change",
		NewValue:    "nope",
		Message:     "please update",
	}, "invalid request payload")
	require.Error(t, err)
	assert.Equal(t, "invalid email format", appErrors.FromError(err).Fields["newValue"])

	err = Validate(NewValidator(), CreateRequestRequest{
		UserType:    "teacher",
		UserID:      "t-1",
		RequestType: "general",
		Message:     "hello",
	}, "invalid request payload")
	assert.NoError(t, err)
}

func TestValidatePatch(t *testing.T) {
	v := NewValidator()

	err := ValidatePatch(v, UpdateSubjectRequest{}, "invalid subject payload")
	require.Error(t, err)
	assert.Equal(t, "no fields to update", appErrors.FromError(err).Fields["body"])

	err = ValidatePatch(v, UpdateSubjectRequest{Code: models.Some("TOO-LONG-CODE")}, "invalid subject payload")
	require.Error(t, err)
	assert.Equal(t, "must be 10 characters or less", appErrors.FromError(err).Fields["code"])

	assert.NoError(t, ValidatePatch(v, UpdateSubjectRequest{Status: models.Some(models.StatusInactive)}, "invalid subject payload"))
}

func TestValidatePatchUsesValidatorRules(t *testing.T) {
	v := NewValidator()

	err := ValidatePatch(v, UpdateTeacherRequest{
		FirstName: models.Some("   "),
		Email:     models.Some("not-an-email"),
		Password:  models.Some("abc"),
		Status:    models.Some(models.EntityStatus("archived")),
	}, "invalid teacher payload")
	require.Error(t, err)
	fields := appErrors.FromError(err).Fields
	assert.Equal(t, "is required", fields["firstName"])
	assert.Equal(t, "invalid email format", fields["email"])
	assert.Equal(t, "must be at least 6 characters", fields["password"])
	assert.Equal(t, "must be one of active inactive", fields["status"])
	assert.NotContains(t, fields, "lastName")

	err = ValidatePatch(v, UpdateStudentRequest{Email: models.Some("")}, "invalid student payload")
	assert.NoError(t, err, "student email is optional")

	err = ValidatePatch(v, UpdateParentRequest{Relationship: models.Some("uncle")}, "invalid parent payload")
	require.Error(t, err)
	assert.Equal(t, "must be one of father mother guardian other", appErrors.FromError(err).Fields["relationship"])

	err = ValidatePatch(v, UpdateSchoolRequest{
		AttendanceSettings: models.Some(&AttendanceSettingsInput{Mode: "hourly"}),
	}, "invalid school payload")
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Fields, "attendanceSettings.mode")

	assert.NoError(t, ValidatePatch(nil, UpdateSchoolAdminRequest{Email: models.Some("admin@school.test")}, "invalid school admin payload"))
}

func TestLeaveDatesOrdered(t *testing.T) {
	err := Validate(NewValidator(), ApplyLeaveRequest{
		LeaveType: "sick",
		StartDate: "2024-05-10",
		EndDate:   "2024-05-09",
		Reason:    "flu",
	}, "invalid leave payload")
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Fields, "endDate")
}

func TestLoginRequestNeedsAnIdentifier(t *testing.T) {
	v := NewValidator()

	err := Validate(v, LoginRequest{Password: "pw"}, "invalid login payload")
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Fields, "email")

	assert.NoError(t, Validate(v, LoginRequest{Username: "jdoe", Password: "pw"}, "invalid login payload"))
	assert.NoError(t, Validate(v, LoginRequest{Email: "j@doe.io", Password: "pw"}, "invalid login payload"))
}
