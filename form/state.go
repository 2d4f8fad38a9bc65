package form

// State owns the current RequestForm snapshot of one session. Each update
// swaps in a new snapshot. State is not safe for concurrent use; the session
// serializes access.
type State struct {
	current RequestForm

	// attachmentsRev advances on every file-selection event. The cached name
	// list is valid only while namesRev matches it.
	attachmentsRev uint64
	namesRev       uint64
	names          string
	namesComputed  int
}

func NewState() *State {
	return &State{namesRev: ^uint64(0)}
}

// Snapshot returns a copy of the current form.
func (s *State) Snapshot() RequestForm {
	return s.current.Clone()
}

func (s *State) SetField(name string, value any) error {
	next, err := s.current.With(name, value)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// SetAttachments replaces the attachment list with files from the latest
// file-selection event.
func (s *State) SetAttachments(files []Attachment) {
	s.current = s.current.WithAttachments(files)
	s.attachmentsRev++
}

func (s *State) Merge(c CarryOver) error {
	next, err := s.current.WithCarryOver(c)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// AttachmentNames is the comma separated list of attachment names. It is
// recomputed only after SetAttachments.
func (s *State) AttachmentNames() string {
	if s.namesRev != s.attachmentsRev {
		s.names = AttachmentNames(s.current.Attachments)
		s.namesRev = s.attachmentsRev
		s.namesComputed++
	}
	return s.names
}
