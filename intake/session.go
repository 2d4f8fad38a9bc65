package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tbxark/intakeflow/catalog"
	"github.com/tbxark/intakeflow/faq"
	"github.com/tbxark/intakeflow/form"
	"github.com/tbxark/intakeflow/submission"
	"github.com/tbxark/intakeflow/triage"
	"github.com/tbxark/intakeflow/types"
	"go.uber.org/zap"
)

// Mode selects which audience copy the page shows.
type Mode string

const (
	ModeRenter Mode = "renter"
	ModeOwner  Mode = "owner"
)

var ErrUnknownMode = errors.New("unknown audience mode")

// Session is the intake state of one visitor: triage selection, request form,
// submission lifecycle and FAQ disclosure. Events are applied one at a time
// in the order they arrive.
type Session struct {
	id      string
	catalog *catalog.Catalog
	logger  *zap.Logger
	opts    sessionOptions

	mu        sync.Mutex
	selector  *triage.Selector
	form      *form.State
	faq       *faq.Disclosure
	mode      Mode
	submitter *submission.Controller
}

func NewSession(opts ...Option) *Session {
	o := newSessionOptions(opts...)
	id := uuid.NewString()
	s := &Session{
		id:       id,
		catalog:  o.catalog,
		logger:   o.logger.With(zap.String("session", id)),
		opts:     o,
		selector: triage.NewSelector(o.catalog),
		form:     form.NewState(),
		faq:      faq.NewDisclosure(len(o.catalog.FAQ)),
		mode:     ModeRenter,
	}
	s.submitter = submission.NewController(
		submission.WithAckDelay(o.ackDelay),
		submission.WithPolicy(o.policy),
		submission.WithScheduler(o.scheduler),
		submission.WithLogger(s.logger),
		submission.WithEffectHandler(func(e types.Effect) { s.emit(e) }),
	)
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Select chooses a symptom from the catalog, replacing any earlier choice.
func (s *Session) Select(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.selector.Select(key); err != nil {
		return err
	}
	s.logger.Debug("symptom selected", zap.String("key", key))
	return nil
}

// Recognize maps a free-text description to a catalog key and selects it.
func (s *Session) Recognize(ctx context.Context, text string) (string, error) {
	key, err := s.opts.recognizer.Recognize(ctx, &triage.Request{
		Text:    text,
		Options: s.catalog.Symptoms,
	})
	if err != nil {
		return "", fmt.Errorf("failed to recognize symptom: %w", err)
	}
	if err := s.Select(key); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector.Selected()
}

// CarryToForm merges the triage classification into the form and asks for
// the request section to be focused. With nothing selected it does nothing
// and reports false.
func (s *Session) CarryToForm() (bool, []types.Effect, error) {
	s.mu.Lock()
	patch, ok := s.selector.CarryOver()
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("carry-over ignored, no symptom selected")
		return false, nil, nil
	}
	if err := s.form.Merge(patch); err != nil {
		s.mu.Unlock()
		return false, nil, fmt.Errorf("failed to merge triage selection: %w", err)
	}
	s.mu.Unlock()

	s.logger.Info("triage carried to form",
		zap.String("need", string(patch.Need)),
		zap.String("symptom", patch.Symptom))
	effects := []types.Effect{types.FocusSection(types.SectionRequest)}
	s.emit(effects...)
	return true, effects, nil
}

// SetField replaces one form field. Attachments go through SetAttachments.
func (s *Session) SetField(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.form.Snapshot()
	if err := s.form.SetField(name, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	if ce := s.logger.Check(zap.DebugLevel, "form field updated"); ce != nil {
		ce.Write(zap.String("field", name), zap.Strings("changed", form.ChangedFields(before, s.form.Snapshot())))
	}
	return nil
}

// SetAttachments replaces the attachment list with the latest file selection.
func (s *Session) SetAttachments(files []form.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.SetAttachments(files)
	s.logger.Debug("attachments replaced", zap.Int("count", len(files)))
}

func (s *Session) Form() form.RequestForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Snapshot()
}

func (s *Session) AttachmentNames() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.AttachmentNames()
}

// Submit validates the current form and starts the acknowledgment cycle.
// Validation failures come back as validate sentinel errors.
func (s *Session) Submit() (submission.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitter.Submit(s.form.Snapshot())
}

func (s *Session) SubmissionState() types.SubmissionState {
	return s.submitter.State()
}

// ToggleFAQ flips question i and returns whether it is now open.
func (s *Session) ToggleFAQ(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faq.Toggle(i)
}

func (s *Session) SetMode(m Mode) error {
	if m != ModeRenter && m != ModeOwner {
		return fmt.Errorf("%q: %w", m, ErrUnknownMode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	return nil
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Close tears the session down. A pending acknowledgment never fires.
func (s *Session) Close() {
	s.submitter.Close()
	s.logger.Debug("session closed")
}

func (s *Session) emit(effects ...types.Effect) {
	if s.opts.onEffect == nil {
		return
	}
	for _, e := range effects {
		s.opts.onEffect(e)
	}
}
