package models

import "time"

// RequestStatus tracks change requests and leave requests.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Request is a change request (ticket) raised by a school member.
type Request struct {
	RequestID   string        `json:"requestId"`
	UserType    string        `json:"userType"`
	UserID      string        `json:"userId"`
	UserName    string        `json:"userName"`
	RequestType string        `json:"requestType"`
	OldValue    string        `json:"oldValue,omitempty"`
	NewValue    string        `json:"newValue,omitempty"`
	Message     string        `json:"message"`
	Status      RequestStatus `json:"status"`
	AdminReply  string        `json:"adminReply,omitempty"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

// LeaveRequest is a leave application by a student or teacher.
type LeaveRequest struct {
	LeaveID       string        `json:"leaveId"`
	SchoolID      string        `json:"schoolId"`
	ApplicantID   string        `json:"applicantId"`
	ApplicantType string        `json:"applicantType"`
	ApplicantName string        `json:"applicantName,omitempty"`
	ClassID       string        `json:"classId,omitempty"`
	SectionID     string        `json:"sectionId,omitempty"`
	LeaveType     string        `json:"leaveType"`
	StartDate     string        `json:"startDate"`
	EndDate       string        `json:"endDate"`
	Reason        string        `json:"reason"`
	Status        RequestStatus `json:"status"`
	ProcessedBy   string        `json:"processedBy,omitempty"`
	AdminRemarks  string        `json:"adminRemarks,omitempty"`
	CreatedAt     *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty"`
}

// LeaveSummary counts leave requests by status.
type LeaveSummary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// LeaveList is the backend payload for leave listings.
type LeaveList struct {
	Leaves  []LeaveRequest `json:"leaves"`
	Summary LeaveSummary   `json:"summary"`
}

// LeaveStats backs the school admin dashboard tile.
type LeaveStats struct {
	TodayPending   int `json:"todayPending"`
	TodayTotal     int `json:"todayTotal"`
	TotalPending   int `json:"totalPending"`
	TeacherPending int `json:"teacherPending"`
	StudentPending int `json:"studentPending"`
}
