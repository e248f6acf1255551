package guard

import "github.com/noah-isme/sms-console/internal/models"

// Item is one entry of a role's navigation.
type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Section groups the views one role may open.
type Section struct {
	Prefix string            `json:"prefix"`
	Roles  []models.UserRole `json:"roles"`
	Items  []Item            `json:"items"`
}

// Navigation is the console's view tree.
func Navigation() []Section {
	return []Section{
		{
			Prefix: "/super-admin",
			Roles:  []models.UserRole{models.RoleSuperAdmin},
			Items: []Item{
				{Label: "Dashboard", Path: "/super-admin/dashboard"},
				{Label: "Schools", Path: "/super-admin/schools"},
				{Label: "Users", Path: "/super-admin/users"},
			},
		},
		{
			Prefix: "/school-admin",
			Roles:  []models.UserRole{models.RoleSchoolAdmin},
			Items: []Item{
				{Label: "Dashboard", Path: "/school-admin/dashboard"},
				{Label: "School", Path: "/school-admin/school"},
				{Label: "Classes", Path: "/school-admin/classes"},
				{Label: "Subjects", Path: "/school-admin/subjects"},
				{Label: "Teachers", Path: "/school-admin/teachers"},
				{Label: "Students", Path: "/school-admin/students"},
				{Label: "Parents", Path: "/school-admin/parents"},
				{Label: "Requests", Path: "/school-admin/requests"},
				{Label: "Leave", Path: "/school-admin/leave"},
				{Label: "Attendance", Path: "/school-admin/attendance/mode"},
				{Label: "Profile", Path: "/school-admin/profile"},
			},
		},
		{
			Prefix: "/teacher",
			Roles:  []models.UserRole{models.RoleTeacher},
			Items: []Item{
				{Label: "Dashboard", Path: "/teacher/dashboard"},
				{Label: "Classes", Path: "/teacher/classes"},
				{Label: "Students", Path: "/teacher/students"},
				{Label: "Parents", Path: "/teacher/parents"},
				{Label: "Attendance", Path: "/teacher/attendance/mode"},
				{Label: "Leave", Path: "/teacher/leave"},
				{Label: "My Requests", Path: "/teacher/my-requests"},
				{Label: "Profile", Path: "/teacher/profile"},
			},
		},
		{
			Prefix: "/student",
			Roles:  []models.UserRole{models.RoleStudent},
			Items: []Item{
				{Label: "Dashboard", Path: "/student/dashboard"},
				{Label: "Classes", Path: "/student/classes"},
				{Label: "Attendance", Path: "/student/attendance"},
				{Label: "Leave", Path: "/student/leave"},
				{Label: "My Requests", Path: "/student/my-requests"},
				{Label: "Profile", Path: "/student/profile"},
			},
		},
	}
}

// Menu returns the items a role may open.
func Menu(role models.UserRole) []Item {
	for _, section := range Navigation() {
		for _, r := range section.Roles {
			if r == role {
				return section.Items
			}
		}
	}
	return nil
}
