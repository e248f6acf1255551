package attendance

import "github.com/noah-isme/sms-console/internal/models"

// ResolveMode returns the school's attendance mode, defaulting to simple
// when settings are missing or name an unknown mode.
func ResolveMode(settings *models.AttendanceSettings) models.AttendanceMode {
	if settings == nil {
		return models.ModeSimple
	}
	switch settings.Mode {
	case models.ModePeriodWise, models.ModeCheckInOut:
		return settings.Mode
	default:
		return models.ModeSimple
	}
}
