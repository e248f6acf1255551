package dto

import "github.com/noah-isme/sms-console/internal/models"

// CreateRequestRequest raises a change request. The requester identity is
// filled from the session by the handler.
type CreateRequestRequest struct {
	UserType    string `json:"userType" validate:"required,oneof=teacher student parent sch_admin"`
	UserID      string `json:"userId" validate:"required"`
	UserName    string `json:"userName"`
	RequestType string `json:"requestType" validate:"required,oneof=email_change phone_change general"`
	OldValue    string `json:"oldValue,omitempty"`
	NewValue    string `json:"newValue,omitempty" validate:"required_unless=RequestType general"`
	Message     string `json:"message" validate:"notblank"`
}

// Check covers the rule the tags cannot express.
func (r CreateRequestRequest) Check(c *Checker) {
	if r.RequestType == "email_change" {
		c.check("newValue", r.NewValue, ruleOptionalEmail)
	}
}

// UpdateRequestStatusRequest answers a change request.
type UpdateRequestStatusRequest struct {
	Status     models.RequestStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	AdminReply string               `json:"adminReply,omitempty"`
}

// ApplyLeaveRequest is a leave application by the signed-in member.
type ApplyLeaveRequest struct {
	LeaveType string `json:"leaveType" validate:"required"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"notblank"`
	ClassID   string `json:"classId,omitempty"`
	SectionID string `json:"sectionId,omitempty"`
}

// Check covers the rule the tags cannot express.
func (r ApplyLeaveRequest) Check(c *Checker) {
	// ISO dates compare lexically.
	if r.StartDate != "" && r.EndDate != "" && r.EndDate < r.StartDate {
		c.Fail("endDate", "must not be before startDate")
	}
}

// ProcessLeaveRequest approves or rejects a leave.
type ProcessLeaveRequest struct {
	Status       models.RequestStatus `json:"status" validate:"required,oneof=approved rejected"`
	AdminRemarks string               `json:"adminRemarks,omitempty"`
}
