package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/models"
)

func TestTeacherTableRowsAndDataset(t *testing.T) {
	teachers := []models.Teacher{
		{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Subjects: []string{"m", "p"}, Status: models.StatusActive},
		{FirstName: "Bo", Email: "bo@example.com", Status: models.StatusInactive},
	}

	ds := TeacherTable.Dataset(teachers)
	assert.Equal(t, "Teachers", ds.Title)
	assert.Equal(t, []string{"Name", "Email", "Phone", "Department", "Subjects", "Status"}, ds.Headers)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, []string{"Ann Lee", "ann@example.com", "-", "-", "2", "Active"}, ds.Rows[0])
	assert.Equal(t, "Inactive", ds.Rows[1][5])
}

func TestSelectKeepsRequestedOrder(t *testing.T) {
	table := StudentTable.Select([]string{"status", "name", "bogus"})
	assert.Equal(t, []string{"status", "name"}, table.Keys())

	assert.Equal(t, StudentTable.Keys(), StudentTable.Select(nil).Keys())
	assert.Equal(t, StudentTable.Keys(), StudentTable.Select([]string{"bogus"}).Keys())
}

func TestRecordsAreKeyed(t *testing.T) {
	in := time.Date(2026, 10, 19, 7, 45, 0, 0, time.UTC)
	recs := TeacherAttendanceTable.Records([]models.TeacherAttendance{
		{Date: "2026-10-19", TeacherID: "t1", CheckInTime: &in, Status: models.AttendanceHalfDay},
	})
	require.Len(t, recs, 1)
	assert.Equal(t, "07:45", recs[0]["checkIn"])
	assert.Equal(t, "-", recs[0]["checkOut"])
	assert.Equal(t, "Half Day", recs[0]["status"])
}

func TestClassTableJoinsSections(t *testing.T) {
	rows := ClassTable.Rows([]models.Class{{Name: "Grade 5", Sections: []models.Section{{Name: "A"}, {Name: "B"}}}})
	assert.Equal(t, "A, B", rows[0][1])
}
