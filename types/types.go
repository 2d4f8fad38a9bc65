package types

// SubmissionState is the lifecycle of a request submission. It only moves
// forward: idle -> pending -> acknowledged, and back to pending on resubmit.
type SubmissionState string

const (
	StateIdle         SubmissionState = "idle"
	StatePending      SubmissionState = "pending"
	StateAcknowledged SubmissionState = "acknowledged"
)

type FieldInfo struct {
	JSONPointer string `json:"json_pointer"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// SectionID names a region of the page that an effect can bring into view.
type SectionID string

const (
	SectionTriage      SectionID = "triage"
	SectionRequest     SectionID = "request"
	SectionSuccessNote SectionID = "success-note"
)

type EffectKind string

const (
	EffectFocusSection EffectKind = "focus_section"
)

// Effect is a side effect requested by a state transition. The presentation
// layer executes it; the state layer never touches the environment itself.
type Effect struct {
	Kind    EffectKind `json:"kind"`
	Section SectionID  `json:"section"`
}

func FocusSection(id SectionID) Effect {
	return Effect{Kind: EffectFocusSection, Section: id}
}
