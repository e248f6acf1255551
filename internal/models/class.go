package models

import "time"

// Section is embedded in its class.
type Section struct {
	SectionID      string `json:"sectionId"`
	Name           string `json:"name"`
	ClassTeacherID string `json:"classTeacherId,omitempty"`
}

// Class groups sections of a grade.
type Class struct {
	ClassID     string       `json:"classId"`
	SchoolID    string       `json:"schoolId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Sections    []Section    `json:"sections"`
	Status      EntityStatus `json:"status"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

// Section looks up a section by id.
func (c Class) Section(id string) (Section, bool) {
	for _, s := range c.Sections {
		if s.SectionID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Subject is taught within a school.
type Subject struct {
	SubjectID   string       `json:"subjectId"`
	SchoolID    string       `json:"schoolId"`
	Name        string       `json:"name"`
	Code        string       `json:"code"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}
