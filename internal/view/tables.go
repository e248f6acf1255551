package view

import (
	"strconv"
	"strings"

	"github.com/noah-isme/sms-console/internal/models"
)

// SchoolTable lists schools.
var SchoolTable = Table[models.School]{
	Title: "Schools",
	Columns: []Column[models.School]{
		{Key: "name", Label: "School", Format: func(s models.School) string { return s.SchoolName }},
		{Key: "dbName", Label: "Database", Format: func(s models.School) string { return s.SchoolDBName }},
		{Key: "email", Label: "Email", Format: func(s models.School) string { return dash(s.SchoolEmail) }},
		{Key: "contact", Label: "Contact", Format: func(s models.School) string { return dash(s.SchoolContact) }},
		{Key: "mode", Label: "Attendance", Format: func(s models.School) string {
			if s.AttendanceSettings == nil {
				return title(string(models.ModeSimple))
			}
			return title(string(s.AttendanceSettings.Mode))
		}},
		{Key: "status", Label: "Status", Format: func(s models.School) string { return title(string(s.Status)) }},
	},
}

// SchoolAdminTable lists school admin accounts.
var SchoolAdminTable = Table[models.SchoolAdmin]{
	Title: "School Admins",
	Columns: []Column[models.SchoolAdmin]{
		{Key: "username", Label: "Username", Format: func(a models.SchoolAdmin) string { return a.Username }},
		{Key: "email", Label: "Email", Format: func(a models.SchoolAdmin) string { return a.Email }},
		{Key: "schoolId", Label: "School", Format: func(a models.SchoolAdmin) string { return a.SchoolID }},
		{Key: "contact", Label: "Contact", Format: func(a models.SchoolAdmin) string { return dash(a.ContactNumber) }},
		{Key: "status", Label: "Status", Format: func(a models.SchoolAdmin) string { return title(string(a.Status)) }},
	},
}

// TeacherTable lists teachers.
var TeacherTable = Table[models.Teacher]{
	Title: "Teachers",
	Columns: []Column[models.Teacher]{
		{Key: "name", Label: "Name", Format: func(t models.Teacher) string { return t.FullName() }},
		{Key: "email", Label: "Email", Format: func(t models.Teacher) string { return t.Email }},
		{Key: "phone", Label: "Phone", Format: func(t models.Teacher) string { return dash(t.Phone) }},
		{Key: "department", Label: "Department", Format: func(t models.Teacher) string { return dash(t.Department) }},
		{Key: "subjects", Label: "Subjects", Format: func(t models.Teacher) string { return strconv.Itoa(len(t.Subjects)) }},
		{Key: "status", Label: "Status", Format: func(t models.Teacher) string { return title(string(t.Status)) }},
	},
}

// StudentTable lists students.
var StudentTable = Table[models.Student]{
	Title: "Students",
	Columns: []Column[models.Student]{
		{Key: "name", Label: "Name", Format: func(s models.Student) string { return s.FullName() }},
		{Key: "rollNumber", Label: "Roll No", Format: func(s models.Student) string { return dash(s.RollNumber) }},
		{Key: "class", Label: "Class", Format: func(s models.Student) string {
			if s.Section == "" {
				return dash(s.Class)
			}
			return s.Class + " / " + s.Section
		}},
		{Key: "email", Label: "Email", Format: func(s models.Student) string { return dash(s.Email) }},
		{Key: "status", Label: "Status", Format: func(s models.Student) string { return title(string(s.Status)) }},
	},
}

// ParentTable lists parents.
var ParentTable = Table[models.Parent]{
	Title: "Parents",
	Columns: []Column[models.Parent]{
		{Key: "name", Label: "Name", Format: func(p models.Parent) string { return p.FullName() }},
		{Key: "email", Label: "Email", Format: func(p models.Parent) string { return p.Email }},
		{Key: "phone", Label: "Phone", Format: func(p models.Parent) string { return dash(p.Phone) }},
		{Key: "relationship", Label: "Relationship", Format: func(p models.Parent) string { return title(p.Relationship) }},
		{Key: "children", Label: "Children", Format: func(p models.Parent) string { return strconv.Itoa(len(p.StudentIDs)) }},
		{Key: "status", Label: "Status", Format: func(p models.Parent) string { return title(string(p.Status)) }},
	},
}

// ClassTable lists classes.
var ClassTable = Table[models.Class]{
	Title: "Classes",
	Columns: []Column[models.Class]{
		{Key: "name", Label: "Class", Format: func(c models.Class) string { return c.Name }},
		{Key: "sections", Label: "Sections", Format: func(c models.Class) string {
			names := make([]string, 0, len(c.Sections))
			for _, s := range c.Sections {
				names = append(names, s.Name)
			}
			return dash(strings.Join(names, ", "))
		}},
		{Key: "status", Label: "Status", Format: func(c models.Class) string { return title(string(c.Status)) }},
	},
}

// SubjectTable lists subjects.
var SubjectTable = Table[models.Subject]{
	Title: "Subjects",
	Columns: []Column[models.Subject]{
		{Key: "code", Label: "Code", Format: func(s models.Subject) string { return s.Code }},
		{Key: "name", Label: "Subject", Format: func(s models.Subject) string { return s.Name }},
		{Key: "status", Label: "Status", Format: func(s models.Subject) string { return title(string(s.Status)) }},
	},
}

// RequestTable lists requests.
var RequestTable = Table[models.Request]{
	Title: "Requests",
	Columns: []Column[models.Request]{
		{Key: "date", Label: "Date", Format: func(r models.Request) string { return date(r.CreatedAt) }},
		{Key: "user", Label: "Requested By", Format: func(r models.Request) string { return dash(r.UserName) }},
		{Key: "type", Label: "Type", Format: func(r models.Request) string { return title(r.RequestType) }},
		{Key: "message", Label: "Message", Format: func(r models.Request) string { return r.Message }},
		{Key: "status", Label: "Status", Format: func(r models.Request) string { return title(string(r.Status)) }},
	},
}

// LeaveTable lists leave applications.
var LeaveTable = Table[models.LeaveRequest]{
	Title: "Leave",
	Columns: []Column[models.LeaveRequest]{
		{Key: "applicant", Label: "Applicant", Format: func(l models.LeaveRequest) string { return dash(l.ApplicantName) }},
		{Key: "type", Label: "Type", Format: func(l models.LeaveRequest) string { return title(l.LeaveType) }},
		{Key: "from", Label: "From", Format: func(l models.LeaveRequest) string { return l.StartDate }},
		{Key: "to", Label: "To", Format: func(l models.LeaveRequest) string { return l.EndDate }},
		{Key: "status", Label: "Status", Format: func(l models.LeaveRequest) string { return title(string(l.Status)) }},
	},
}

// AttendanceRateTable lists report lines.
var AttendanceRateTable = Table[models.AttendanceRateRow]{
	Title: "Attendance",
	Columns: []Column[models.AttendanceRateRow]{
		{Key: "subject", Label: "Subject", Format: func(r models.AttendanceRateRow) string {
			switch {
			case r.StudentID != "":
				return r.StudentID
			case r.TeacherID != "":
				return r.TeacherID
			case r.SectionID != "":
				return r.ClassID + " / " + r.SectionID
			default:
				return r.ClassID
			}
		}},
		{Key: "present", Label: "Present", Format: func(r models.AttendanceRateRow) string { return strconv.Itoa(r.Present) }},
		{Key: "absent", Label: "Absent", Format: func(r models.AttendanceRateRow) string { return strconv.Itoa(r.Absent) }},
		{Key: "late", Label: "Late", Format: func(r models.AttendanceRateRow) string { return strconv.Itoa(r.Late) }},
		{Key: "total", Label: "Total", Format: func(r models.AttendanceRateRow) string { return strconv.Itoa(r.Total) }},
		{Key: "percentage", Label: "Rate %", Format: func(r models.AttendanceRateRow) string { return r.Percentage }},
	},
}

// TeacherAttendanceTable lists teacher day records.
var TeacherAttendanceTable = Table[models.TeacherAttendance]{
	Title: "Teacher Attendance",
	Columns: []Column[models.TeacherAttendance]{
		{Key: "date", Label: "Date", Format: func(a models.TeacherAttendance) string { return a.Date }},
		{Key: "teacherId", Label: "Teacher", Format: func(a models.TeacherAttendance) string { return a.TeacherID }},
		{Key: "checkIn", Label: "Check In", Format: func(a models.TeacherAttendance) string { return clock(a.CheckInTime) }},
		{Key: "checkOut", Label: "Check Out", Format: func(a models.TeacherAttendance) string { return clock(a.CheckOutTime) }},
		{Key: "status", Label: "Status", Format: func(a models.TeacherAttendance) string { return title(string(a.Status)) }},
	},
}
