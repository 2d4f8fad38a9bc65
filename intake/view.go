package intake

import (
	"github.com/bytedance/sonic"
	"github.com/tbxark/intakeflow/form"
	"github.com/tbxark/intakeflow/types"
	"github.com/tbxark/intakeflow/validate"
)

// View is a read-only picture of a session, suitable for rendering or for
// handing back to a model as tool output.
type View struct {
	ID              string                `json:"id"`
	Mode            Mode                  `json:"mode"`
	Checklist       []string              `json:"checklist"`
	Selected        string                `json:"selected,omitempty"`
	Form            form.RequestForm      `json:"form"`
	AttachmentNames string                `json:"attachmentNames"`
	Submission      types.SubmissionState `json:"submission"`
	Status          string                `json:"status,omitempty"`
	LastFailure     validate.Reason       `json:"lastFailure,omitempty"`
	FailureMessage  string                `json:"failureMessage,omitempty"`
	FAQOpen         map[int]bool          `json:"faqOpen"`
}

func (s *Session) View() View {
	s.mu.Lock()
	v := View{
		ID:              s.id,
		Mode:            s.mode,
		Selected:        s.selector.Selected(),
		Form:            s.form.Snapshot(),
		AttachmentNames: s.form.AttachmentNames(),
		FAQOpen:         s.faq.Snapshot(),
	}
	s.mu.Unlock()

	v.Checklist = Checklist(v.Mode)
	v.Submission = s.submitter.State()
	v.Status = StatusMessage(v.Submission)
	v.LastFailure = s.submitter.LastFailure()
	v.FailureMessage = FailureMessage(v.LastFailure)
	return v
}

func (v View) JSON() (string, error) {
	return sonic.ConfigStd.MarshalToString(v)
}
