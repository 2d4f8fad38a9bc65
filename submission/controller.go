package submission

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/tbxark/intakeflow/form"
	"github.com/tbxark/intakeflow/types"
	"github.com/tbxark/intakeflow/validate"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("submission controller closed")

// Result reports what a submit call did.
type Result struct {
	State   types.SubmissionState `json:"state"`
	Verdict validate.Verdict      `json:"verdict"`
	Attempt string                `json:"attempt,omitempty"`
	// Ignored is set when a valid submit arrived while an attempt was
	// pending and the reject policy dropped it.
	Ignored bool `json:"ignored,omitempty"`
}

// Controller drives idle -> pending -> acknowledged. At most one
// acknowledgment timer is armed at any time, and a timer only acts on the
// attempt that armed it.
type Controller struct {
	opts options

	mu          sync.Mutex
	state       types.SubmissionState
	attempt     string
	timer       Timer
	lastFailure validate.Reason
	closed      bool
}

func NewController(opts ...Option) *Controller {
	o := options{
		delay:     DefaultAckDelay,
		policy:    PolicyReject,
		scheduler: RealScheduler(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Controller{
		opts:  o,
		state: types.StateIdle,
	}
}

// Submit validates f and, when it passes, moves to pending and arms the
// acknowledgment timer. A failed validation never changes the state; its
// sentinel error is returned together with the verdict.
func (c *Controller) Submit(f form.RequestForm) (Result, error) {
	verdict := validate.Validate(f)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Result{State: c.state, Verdict: verdict, Attempt: c.attempt}, ErrClosed
	}
	if !verdict.Passed() {
		c.lastFailure = verdict.Reason
		c.opts.logger.Info("submit rejected by validation",
			zap.String("reason", string(verdict.Reason)),
			zap.Int("missing", len(verdict.Missing)),
			zap.String("state", string(c.state)))
		return Result{State: c.state, Verdict: verdict, Attempt: c.attempt}, verdict.Err()
	}

	if c.state == types.StatePending {
		if c.opts.policy != PolicyRestart {
			c.opts.logger.Debug("submit ignored, attempt in flight", zap.String("attempt", c.attempt))
			return Result{State: c.state, Verdict: verdict, Attempt: c.attempt, Ignored: true}, nil
		}
		if c.timer != nil {
			c.timer.Stop()
		}
		c.opts.logger.Debug("restarting pending attempt", zap.String("attempt", c.attempt))
	}

	attempt := uuid.NewString()
	c.attempt = attempt
	c.state = types.StatePending
	c.lastFailure = validate.ReasonNone
	c.timer = c.opts.scheduler.AfterFunc(c.opts.delay, func() {
		c.acknowledge(attempt)
	})
	c.opts.logger.Info("submit accepted",
		zap.String("attempt", attempt),
		zap.Duration("ack_delay", c.opts.delay))

	return Result{State: types.StatePending, Verdict: verdict, Attempt: attempt}, nil
}

func (c *Controller) acknowledge(attempt string) {
	c.mu.Lock()
	if c.closed || c.attempt != attempt || c.state != types.StatePending {
		c.mu.Unlock()
		c.opts.logger.Debug("stale acknowledgment dropped", zap.String("attempt", attempt))
		return
	}
	c.state = types.StateAcknowledged
	c.timer = nil
	onEffect := c.opts.onEffect
	c.mu.Unlock()

	c.opts.logger.Info("submission acknowledged", zap.String("attempt", attempt))
	if onEffect != nil {
		onEffect(types.FocusSection(types.SectionSuccessNote))
	}
}

// Close discards any pending timer without firing it. Further submits fail
// with ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) State() types.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attempt is the id of the latest attempt that reached pending.
func (c *Controller) Attempt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// LastFailure is the reason of the latest failed validation, cleared when an
// attempt reaches pending.
func (c *Controller) LastFailure() validate.Reason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFailure
}
