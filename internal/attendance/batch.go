package attendance

import (
	"fmt"

	"github.com/noah-isme/sms-console/internal/models"
)

// BatchResult wraps a bulk save outcome. Failed items are reported, never
// retried.
type BatchResult struct {
	models.BatchOutcome
}

// NewBatchResult wraps an outcome, normalising nil slices.
func NewBatchResult(outcome models.BatchOutcome) BatchResult {
	if outcome.Results == nil {
		outcome.Results = []map[string]any{}
	}
	if outcome.Errors == nil {
		outcome.Errors = []map[string]any{}
	}
	return BatchResult{BatchOutcome: outcome}
}

// Succeeded is the number of saved items.
func (r BatchResult) Succeeded() int { return len(r.Results) }

// Failed is the number of rejected items.
func (r BatchResult) Failed() int { return len(r.Errors) }

// Complete reports whether every item was saved.
func (r BatchResult) Complete() bool { return len(r.Errors) == 0 }

// Message is the single aggregate line shown for the save.
func (r BatchResult) Message() string {
	switch {
	case r.Complete():
		return fmt.Sprintf("attendance saved for %d record(s)", r.Succeeded())
	case r.Succeeded() == 0:
		return fmt.Sprintf("attendance not saved: %d record(s) failed", r.Failed())
	default:
		return fmt.Sprintf("attendance saved for %d record(s), %d failed", r.Succeeded(), r.Failed())
	}
}
