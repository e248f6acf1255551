package attendance

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// Entry is one roster member's pending status.
type Entry struct {
	StudentID string                  `json:"studentId"`
	Name      string                  `json:"name,omitempty"`
	Status    models.AttendanceStatus `json:"status"`
	Remarks   string                  `json:"remarks,omitempty"`
}

// ledger holds one entry per roster member in roster order.
type ledger struct {
	order   []string
	entries map[string]*Entry
	allowed map[models.AttendanceStatus]bool
}

func newLedger(roster []models.Student, allowed ...models.AttendanceStatus) ledger {
	l := ledger{
		order:   make([]string, 0, len(roster)),
		entries: make(map[string]*Entry, len(roster)),
		allowed: make(map[models.AttendanceStatus]bool, len(allowed)),
	}
	for _, status := range allowed {
		l.allowed[status] = true
	}
	for _, student := range roster {
		if _, dup := l.entries[student.StudentID]; dup || student.StudentID == "" {
			continue
		}
		l.order = append(l.order, student.StudentID)
		l.entries[student.StudentID] = &Entry{
			StudentID: student.StudentID,
			Name:      student.FullName(),
			Status:    models.AttendancePresent,
		}
	}
	return l
}

func (l *ledger) apply(studentID string, status models.AttendanceStatus, remarks string) {
	// Records for students no longer on the roster are ignored.
	if entry, ok := l.entries[studentID]; ok {
		if l.allowed[status] {
			entry.Status = status
		}
		entry.Remarks = remarks
	}
}

func (l *ledger) set(studentID string, status models.AttendanceStatus, remarks *string) error {
	entry, ok := l.entries[studentID]
	if !ok {
		return appErrors.Validation("student is not on this roster", map[string]string{studentID: "not on roster"})
	}
	if !l.allowed[status] {
		return appErrors.Validation("invalid attendance status", map[string]string{studentID: fmt.Sprintf("status %q not allowed", status)})
	}
	entry.Status = status
	if remarks != nil {
		entry.Remarks = *remarks
	}
	return nil
}

func (l *ledger) markAll(status models.AttendanceStatus) error {
	if !l.allowed[status] {
		return appErrors.Validation("invalid attendance status", map[string]string{"markAll": fmt.Sprintf("status %q not allowed", status)})
	}
	for _, id := range l.order {
		l.entries[id].Status = status
	}
	return nil
}

func (l *ledger) list() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.entries[id])
	}
	return out
}

func (l *ledger) summary() models.AttendanceSummary {
	s := models.AttendanceSummary{Total: len(l.order)}
	for _, id := range l.order {
		switch l.entries[id].Status {
		case models.AttendancePresent:
			s.Present++
		case models.AttendanceAbsent:
			s.Absent++
		case models.AttendanceLate:
			s.Late++
		case models.AttendanceHalfDay:
			s.HalfDay++
		case models.AttendanceLeave:
			s.Leave++
		}
	}
	s.Percentage = Percentage(s.Present+s.Late, s.Total)
	return s
}

// Percentage renders part/total with one decimal; an empty total is 0.0.
func Percentage(part, total int) string {
	if total <= 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(part)*100/float64(total), 'f', 1, 64)
}

// Sheet is the simple (one status per student per day) marking sheet.
// Every roster member starts as present; existing records for the date
// override that default.
type Sheet struct {
	ClassID   string
	SectionID string
	Date      string
	ledger
}

// NewSheet builds a sheet for a roster and the records already saved.
func NewSheet(classID, sectionID, date string, roster []models.Student, existing []models.AttendanceSimple) *Sheet {
	s := &Sheet{
		ClassID:   classID,
		SectionID: sectionID,
		Date:      date,
		ledger: newLedger(roster,
			models.AttendancePresent,
			models.AttendanceAbsent,
			models.AttendanceLate,
			models.AttendanceHalfDay,
			models.AttendanceLeave,
		),
	}
	for _, rec := range existing {
		if rec.Date != "" && date != "" && rec.Date != date {
			continue
		}
		s.apply(rec.StudentID, rec.Status, rec.Remarks)
	}
	return s
}

// Set changes one student's status; a nil remarks keeps the current remark.
func (s *Sheet) Set(studentID string, status models.AttendanceStatus, remarks *string) error {
	return s.set(studentID, status, remarks)
}

// MarkAll overwrites every roster member's status, keeping remarks.
func (s *Sheet) MarkAll(status models.AttendanceStatus) error {
	return s.markAll(status)
}

// Records returns the entries in roster order.
func (s *Sheet) Records() []Entry { return s.list() }

// Len is the number of entries.
func (s *Sheet) Len() int { return len(s.order) }

// Summary counts the entries by status.
func (s *Sheet) Summary() models.AttendanceSummary { return s.summary() }

// Request is the single save body carrying every entry.
func (s *Sheet) Request() dto.MarkSimpleRequest {
	records := make([]dto.SimpleRecordInput, 0, len(s.order))
	for _, e := range s.list() {
		records = append(records, dto.SimpleRecordInput{StudentID: e.StudentID, Status: e.Status, Remarks: e.Remarks})
	}
	return dto.MarkSimpleRequest{
		ClassID:           s.ClassID,
		SectionID:         s.SectionID,
		Date:              s.Date,
		AttendanceRecords: records,
	}
}

// PeriodSheet is the marking sheet of one period and subject. Only present,
// absent and late are recorded per period.
type PeriodSheet struct {
	ClassID      string
	SectionID    string
	Date         string
	Period       int
	SubjectID    string
	TeacherID    string
	IsSubstitute bool
	ledger
}

// NewPeriodSheet builds a period sheet. Existing records of other periods or
// subjects are ignored.
func NewPeriodSheet(classID, sectionID, date string, period int, subjectID, teacherID string, substitute bool, roster []models.Student, existing []models.AttendancePeriod) *PeriodSheet {
	s := &PeriodSheet{
		ClassID:      classID,
		SectionID:    sectionID,
		Date:         date,
		Period:       period,
		SubjectID:    subjectID,
		TeacherID:    teacherID,
		IsSubstitute: substitute,
		ledger:       newLedger(roster, models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate),
	}
	for _, rec := range existing {
		if rec.Period != period || (subjectID != "" && rec.SubjectID != subjectID) {
			continue
		}
		s.apply(rec.StudentID, rec.Status, rec.Remarks)
	}
	return s
}

// Set changes one student's status; a nil remarks keeps the current remark.
func (s *PeriodSheet) Set(studentID string, status models.AttendanceStatus, remarks *string) error {
	return s.set(studentID, status, remarks)
}

// MarkAll overwrites every roster member's status, keeping remarks.
func (s *PeriodSheet) MarkAll(status models.AttendanceStatus) error {
	return s.markAll(status)
}

// Records returns the entries in roster order.
func (s *PeriodSheet) Records() []Entry { return s.list() }

// Len is the number of entries.
func (s *PeriodSheet) Len() int { return len(s.order) }

// Summary counts the entries by status.
func (s *PeriodSheet) Summary() models.AttendanceSummary { return s.summary() }

// Request is the single save body for the period.
func (s *PeriodSheet) Request() dto.MarkPeriodRequest {
	records := make([]dto.PeriodRecordInput, 0, len(s.order))
	for _, e := range s.list() {
		records = append(records, dto.PeriodRecordInput{StudentID: e.StudentID, Status: e.Status, Remarks: e.Remarks})
	}
	return dto.MarkPeriodRequest{
		ClassID:           s.ClassID,
		SectionID:         s.SectionID,
		Date:              s.Date,
		Period:            s.Period,
		SubjectID:         s.SubjectID,
		TeacherID:         s.TeacherID,
		IsSubstitute:      s.IsSubstitute,
		AttendanceRecords: records,
	}
}
