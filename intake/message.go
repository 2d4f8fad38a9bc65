package intake

import (
	"github.com/tbxark/intakeflow/types"
	"github.com/tbxark/intakeflow/validate"
)

const (
	MessageMissingRequired = "Please fill in the required fields."
	MessageConsentRequired = "Please agree to receive texts about this request."
	MessagePending         = "Sending your request…"
	MessageAcknowledged    = "✅ Thanks. We’ve received your request. During business hours, expect a text in 10–20 minutes confirming details and an arrival window. After-hours, we’ll text by 8:30am next business day."
)

// FailureMessage is the prompt shown for a validation failure, or "" when
// the reason is empty.
func FailureMessage(reason validate.Reason) string {
	switch reason {
	case validate.ReasonMissingRequiredField:
		return MessageMissingRequired
	case validate.ReasonConsentRequired:
		return MessageConsentRequired
	default:
		return ""
	}
}

// StatusMessage is the note shown for a submission state.
func StatusMessage(state types.SubmissionState) string {
	switch state {
	case types.StatePending:
		return MessagePending
	case types.StateAcknowledged:
		return MessageAcknowledged
	default:
		return ""
	}
}

var checklists = map[Mode][]string{
	ModeRenter: {
		"Have your super/landlord contact handy.",
		"Ask if a COI is required; we can provide one.",
		"Note elevator hours and any access windows.",
		"If new install, you’ll need landlord approval before we start.",
	},
	ModeOwner: {
		"COI requirements and any building forms.",
		"Rooftop / mechanical room access details.",
		"If replacing equipment, co‑op/condo approval timelines.",
	},
}

// Checklist is the preparation list shown for an audience mode.
func Checklist(m Mode) []string {
	return append([]string(nil), checklists[m]...)
}
