package attendance

import (
	"github.com/noah-isme/sms-console/internal/models"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// ErrNoOpenCheckin is returned when a check-out has no open check-in.
var ErrNoOpenCheckin = appErrors.Clone(appErrors.ErrConflict, "no open check-in to check out")

// ErrAlreadyCheckedIn is returned when a check-in already exists for the day.
var ErrAlreadyCheckedIn = appErrors.Clone(appErrors.ErrConflict, "already checked in today")

// CheckinBoard holds today's check-in logs keyed by user.
type CheckinBoard struct {
	logs map[string]models.AttendanceCheckin
}

// NewCheckinBoard indexes logs by user id; a later log for the same user wins.
func NewCheckinBoard(logs []models.AttendanceCheckin) *CheckinBoard {
	b := &CheckinBoard{logs: make(map[string]models.AttendanceCheckin, len(logs))}
	for _, log := range logs {
		b.logs[log.UserID] = log
	}
	return b
}

// Log returns the user's log, if any.
func (b *CheckinBoard) Log(userID string) (models.AttendanceCheckin, bool) {
	log, ok := b.logs[userID]
	return log, ok
}

// CanCheckIn is true when the user has no check-in time today.
func (b *CheckinBoard) CanCheckIn(userID string) bool {
	log, ok := b.logs[userID]
	return !ok || log.CheckInTime == nil
}

// CanCheckOut is true only with a check-in set and check-out empty.
func (b *CheckinBoard) CanCheckOut(userID string) bool {
	log, ok := b.logs[userID]
	return ok && log.Open()
}

// Status describes one user's position on the board.
func (b *CheckinBoard) Status(userID string) models.CheckinStatus {
	log, ok := b.logs[userID]
	if !ok || log.CheckInTime == nil {
		return models.CheckinStatus{}
	}
	return models.CheckinStatus{Checked: true, Log: &log}
}

// CheckOutAllowed validates a check-out against a status read.
func CheckOutAllowed(status models.CheckinStatus) error {
	if !status.Checked || status.Log == nil || !status.Log.Open() {
		return ErrNoOpenCheckin
	}
	return nil
}

// CheckInAllowed validates a check-in against a status read.
func CheckInAllowed(status models.CheckinStatus) error {
	if status.Checked && status.Log != nil && status.Log.CheckInTime != nil {
		return ErrAlreadyCheckedIn
	}
	return nil
}
