package form

import "strings"

type Need string

const (
	NeedRepair      Need = "Repair"
	NeedMaintenance Need = "Maintenance"
	NeedNewInstall  Need = "New install"
	NeedNotSure     Need = "Not sure"
)

type Window string

const (
	WindowToday      Window = "Today if available"
	WindowTomorrowAM Window = "Tomorrow morning"
	WindowTomorrowPM Window = "Tomorrow afternoon"
)

// Option lists offered by the presentation layer. Values outside these lists
// are still accepted on write.
var (
	NeedOptions    = []Need{NeedRepair, NeedMaintenance, NeedNewInstall, NeedNotSure}
	WindowOptions  = []Window{WindowToday, WindowTomorrowAM, WindowTomorrowPM}
	SymptomOptions = []string{"No cooling", "Leaking water", "Won’t turn on / tripping breaker", "Noisy", "Other / Not sure"}
)

// Attachment is an opaque reference to a file picked by the visitor.
type Attachment struct {
	Name        string `json:"name" jsonschema:"description=File name shown to the visitor"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// RequestForm is one immutable snapshot of the service request. Every
// mutation returns a new value; the receiver is never modified.
type RequestForm struct {
	Need        Need         `json:"need" jsonschema:"title=What do you need?,description=Repair or Maintenance or New install or Not sure"`
	Symptom     string       `json:"symptom" jsonschema:"title=What’s the symptom?"`
	Address     string       `json:"address" jsonschema:"title=Address & borough,description=Street and apartment and borough"`
	AccessNotes string       `json:"accessNotes" jsonschema:"title=Access notes"`
	Window      Window       `json:"window" jsonschema:"title=Preferred time window"`
	ContactName string       `json:"contactName" jsonschema:"title=Contact name"`
	Mobile      string       `json:"mobile" jsonschema:"title=Mobile number (for updates)"`
	Email       string       `json:"email" jsonschema:"title=Email (optional)"`
	Consent     bool         `json:"consent" jsonschema:"title=I agree to receive texts about this request."`
	Attachments []Attachment `json:"attachments" jsonschema:"title=Photos or a short video (optional)"`
}

// Clone returns a copy that shares no memory with f.
func (f RequestForm) Clone() RequestForm {
	out := f
	if f.Attachments != nil {
		out.Attachments = make([]Attachment, len(f.Attachments))
		copy(out.Attachments, f.Attachments)
	}
	return out
}

// With replaces a single field. Text values are stored verbatim.
func (f RequestForm) With(name string, value any) (RequestForm, error) {
	if err := checkEditable(name); err != nil {
		return f, err
	}
	return applyPatch(f, []Operation{{Op: OperationReplace, Path: Pointer(name), Value: value}}, editablePaths)
}

// WithAttachments swaps the whole attachment list for files.
func (f RequestForm) WithAttachments(files []Attachment) RequestForm {
	out := f.Clone()
	out.Attachments = make([]Attachment, len(files))
	copy(out.Attachments, files)
	return out
}

// WithCarryOver merges a triage classification. Only need and symptom can change.
func (f RequestForm) WithCarryOver(c CarryOver) (RequestForm, error) {
	return applyPatch(f, c.Operations(), carryOverPaths)
}

// Text returns the string value of a text field, or "" for consent,
// attachments and unknown names.
func (f RequestForm) Text(name string) string {
	switch name {
	case FieldNeed:
		return string(f.Need)
	case FieldSymptom:
		return f.Symptom
	case FieldAddress:
		return f.Address
	case FieldAccessNotes:
		return f.AccessNotes
	case FieldWindow:
		return string(f.Window)
	case FieldContactName:
		return f.ContactName
	case FieldMobile:
		return f.Mobile
	case FieldEmail:
		return f.Email
	default:
		return ""
	}
}

// CarryOver is the patch produced by triage classification.
type CarryOver struct {
	Need    Need   `json:"need"`
	Symptom string `json:"symptom"`
}

func (c CarryOver) Operations() []Operation {
	return []Operation{
		{Op: OperationReplace, Path: Pointer(FieldNeed), Value: string(c.Need)},
		{Op: OperationReplace, Path: Pointer(FieldSymptom), Value: c.Symptom},
	}
}

// AttachmentNames joins attachment names in selection order.
func AttachmentNames(files []Attachment) string {
	names := make([]string, len(files))
	for i, file := range files {
		names[i] = file.Name
	}
	return strings.Join(names, ", ")
}
