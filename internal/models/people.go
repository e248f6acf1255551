package models

import "time"

// Teacher belongs to a school and links to classes and subjects by id.
type Teacher struct {
	TeacherID    string       `json:"teacherId"`
	SchoolID     string       `json:"schoolId"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	Department   string       `json:"department,omitempty"`
	Subjects     []string     `json:"subjects"`
	Classes      []string     `json:"classes"`
	Status       EntityStatus `json:"status"`
	ProfileImage string       `json:"profileImage,omitempty"`
	CreatedAt    *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// FullName joins first and last name.
func (t Teacher) FullName() string { return joinName(t.FirstName, t.LastName) }

// Student belongs to a class/section and optionally references a parent.
type Student struct {
	StudentID    string       `json:"studentId"`
	SchoolID     string       `json:"schoolId"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Class        string       `json:"class"`
	Section      string       `json:"section,omitempty"`
	RollNumber   string       `json:"rollNumber,omitempty"`
	ParentID     string       `json:"parentId,omitempty"`
	DateOfBirth  string       `json:"dateOfBirth,omitempty"`
	Gender       string       `json:"gender,omitempty"`
	Address      string       `json:"address,omitempty"`
	Status       EntityStatus `json:"status"`
	ProfileImage string       `json:"profileImage,omitempty"`
	CreatedAt    *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// FullName joins first and last name.
func (s Student) FullName() string { return joinName(s.FirstName, s.LastName) }

// Parent references the students it is responsible for.
type Parent struct {
	ParentID     string       `json:"parentId"`
	SchoolID     string       `json:"schoolId"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	StudentIDs   []string     `json:"studentIds"`
	Relationship string       `json:"relationship"`
	Occupation   string       `json:"occupation,omitempty"`
	Address      string       `json:"address,omitempty"`
	Status       EntityStatus `json:"status"`
	CreatedAt    *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// FullName joins first and last name.
func (p Parent) FullName() string { return joinName(p.FirstName, p.LastName) }

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
