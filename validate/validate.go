package validate

import (
	"errors"

	"github.com/tbxark/intakeflow/form"
	"github.com/tbxark/intakeflow/types"
)

type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonMissingRequiredField Reason = "missing_required_field"
	ReasonConsentRequired      Reason = "consent_required"
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrConsentRequired      = errors.New("consent required")
)

// requiredFields is the required-field gate, checked in this order.
var requiredFields = []string{
	form.FieldNeed,
	form.FieldSymptom,
	form.FieldAddress,
	form.FieldWindow,
	form.FieldContactName,
	form.FieldMobile,
}

// Verdict is the outcome of Validate. Reason names the gate that failed;
// Missing lists every empty required field in gate order.
type Verdict struct {
	Reason  Reason            `json:"reason,omitempty"`
	Missing []types.FieldInfo `json:"missing,omitempty"`
}

func (v Verdict) Passed() bool {
	return v.Reason == ReasonNone
}

// Err maps the verdict to a sentinel error, or nil when it passed.
func (v Verdict) Err() error {
	switch v.Reason {
	case ReasonMissingRequiredField:
		return ErrMissingRequiredField
	case ReasonConsentRequired:
		return ErrConsentRequired
	default:
		return nil
	}
}

func RequiredFields() []types.FieldInfo {
	out := make([]types.FieldInfo, len(requiredFields))
	for i, name := range requiredFields {
		out[i] = form.Info(name, true)
	}
	return out
}

// Validate checks the required-field gate, then consent. It only reads f.
// Values are not trimmed: a field holding only spaces counts as present.
func Validate(f form.RequestForm) Verdict {
	var missing []types.FieldInfo
	for _, name := range requiredFields {
		if f.Text(name) == "" {
			missing = append(missing, form.Info(name, true))
		}
	}
	if len(missing) > 0 {
		return Verdict{Reason: ReasonMissingRequiredField, Missing: missing}
	}
	if !f.Consent {
		return Verdict{Reason: ReasonConsentRequired}
	}
	return Verdict{}
}
