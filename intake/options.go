package intake

import (
	"time"

	"github.com/tbxark/intakeflow/catalog"
	"github.com/tbxark/intakeflow/submission"
	"github.com/tbxark/intakeflow/triage"
	"github.com/tbxark/intakeflow/types"
	"go.uber.org/zap"
)

type sessionOptions struct {
	catalog    *catalog.Catalog
	recognizer triage.Recognizer
	logger     *zap.Logger
	onEffect   func(types.Effect)
	ackDelay   time.Duration
	policy     submission.Policy
	scheduler  submission.Scheduler
}

type Option func(*sessionOptions)

func newSessionOptions(opts ...Option) sessionOptions {
	o := sessionOptions{
		catalog:    catalog.Default(),
		recognizer: triage.NewLocalRecognizer(),
		logger:     zap.NewNop(),
		ackDelay:   submission.DefaultAckDelay,
		policy:     submission.PolicyReject,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func WithCatalog(c *catalog.Catalog) Option {
	return func(o *sessionOptions) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithRecognizer sets how free-text triage is matched to catalog keys.
func WithRecognizer(r triage.Recognizer) Option {
	return func(o *sessionOptions) {
		if r != nil {
			o.recognizer = r
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *sessionOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEffectHandler receives every effect the session emits, including the
// acknowledgment focus that fires from the timer goroutine.
func WithEffectHandler(fn func(types.Effect)) Option {
	return func(o *sessionOptions) {
		o.onEffect = fn
	}
}

func WithAckDelay(d time.Duration) Option {
	return func(o *sessionOptions) {
		o.ackDelay = d
	}
}

func WithReentryPolicy(p submission.Policy) Option {
	return func(o *sessionOptions) {
		o.policy = p
	}
}

func WithScheduler(s submission.Scheduler) Option {
	return func(o *sessionOptions) {
		o.scheduler = s
	}
}
