package submission

import (
	"fmt"
	"time"

	"github.com/tbxark/intakeflow/types"
	"go.uber.org/zap"
)

// DefaultAckDelay is the simulated confirmation round-trip.
const DefaultAckDelay = 600 * time.Millisecond

// Policy decides what a valid submit does while an attempt is pending.
type Policy string

const (
	// PolicyReject ignores the call and keeps the pending timer.
	PolicyReject Policy = "reject"
	// PolicyRestart cancels the pending timer and arms a new one.
	PolicyRestart Policy = "restart"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicyRestart:
		return PolicyRestart, nil
	default:
		return "", fmt.Errorf("unknown reentry policy %q", s)
	}
}

type options struct {
	delay     time.Duration
	policy    Policy
	scheduler Scheduler
	logger    *zap.Logger
	onEffect  func(types.Effect)
}

type Option func(*options)

func WithAckDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEffectHandler receives the effect emitted when an attempt is
// acknowledged. It runs on the scheduler's goroutine.
func WithEffectHandler(fn func(types.Effect)) Option {
	return func(o *options) {
		o.onEffect = fn
	}
}
