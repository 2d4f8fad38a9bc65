package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateIsEmpty(t *testing.T) {
	s := NewState()
	assert.Equal(t, RequestForm{}, s.Snapshot())
	assert.Empty(t, s.AttachmentNames())
}

func TestStateSetFieldPreservesOthers(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SetField(FieldContactName, "Jane Doe"))
	require.NoError(t, s.SetField(FieldAddress, "123 Main St"))

	snap := s.Snapshot()
	assert.Equal(t, "Jane Doe", snap.ContactName)
	assert.Equal(t, "123 Main St", snap.Address)
	assert.Empty(t, snap.Need)
	assert.False(t, snap.Consent)
}

func TestStateFailedUpdateKeepsSnapshot(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SetField(FieldMobile, "5551234567"))
	require.Error(t, s.SetField(FieldConsent, 42))
	assert.Equal(t, "5551234567", s.Snapshot().Mobile)
}

func TestStateSnapshotIsDetached(t *testing.T) {
	s := NewState()
	s.SetAttachments([]Attachment{{Name: "a.jpg"}})
	snap := s.Snapshot()
	snap.Attachments[0].Name = "tampered"
	assert.Equal(t, "a.jpg", s.Snapshot().Attachments[0].Name)
}

func TestStateAttachmentsReplacedWholesale(t *testing.T) {
	s := NewState()
	s.SetAttachments([]Attachment{{Name: "a"}, {Name: "b"}})
	assert.Equal(t, "a, b", s.AttachmentNames())

	s.SetAttachments([]Attachment{{Name: "c"}})
	assert.Equal(t, []Attachment{{Name: "c"}}, s.Snapshot().Attachments)
	assert.Equal(t, "c", s.AttachmentNames())

	s.SetAttachments(nil)
	assert.Empty(t, s.Snapshot().Attachments)
	assert.Empty(t, s.AttachmentNames())
}

func TestStateAttachmentNamesMemoized(t *testing.T) {
	s := NewState()
	s.SetAttachments([]Attachment{{Name: "thermostat.jpg"}, {Name: "leak.mp4"}})

	assert.Equal(t, "thermostat.jpg, leak.mp4", s.AttachmentNames())
	assert.Equal(t, 1, s.namesComputed)

	require.NoError(t, s.SetField(FieldEmail, "jane@example.com"))
	require.NoError(t, s.Merge(CarryOver{Need: NeedRepair, Symptom: "Leaking water"}))
	assert.Equal(t, "thermostat.jpg, leak.mp4", s.AttachmentNames())
	assert.Equal(t, 1, s.namesComputed, "unrelated updates must not recompute")

	s.SetAttachments([]Attachment{{Name: "unit.png"}})
	assert.Equal(t, "unit.png", s.AttachmentNames())
	assert.Equal(t, 2, s.namesComputed)
}

func TestStateMerge(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SetField(FieldAddress, "123 Main St"))
	require.NoError(t, s.Merge(CarryOver{Need: NeedNewInstall, Symptom: "New install"}))

	snap := s.Snapshot()
	assert.Equal(t, NeedNewInstall, snap.Need)
	assert.Equal(t, "New install", snap.Symptom)
	assert.Equal(t, "123 Main St", snap.Address)
}
