package resilience

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultRetryDelay is the pause before the single retry of a transient failure.
const DefaultRetryDelay = 1 * time.Second

// Retrier runs store operations, retrying a transient failure exactly once.
type Retrier struct {
	classifier Classifier
	delay      time.Duration
	logger     *log.Logger
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithDelay sets the pause before the retry.
func WithDelay(d time.Duration) Option {
	return func(r *Retrier) {
		if d >= 0 {
			r.delay = d
		}
	}
}

// WithClassifier sets the failure classification strategy.
func WithClassifier(c Classifier) Option {
	return func(r *Retrier) {
		if c != nil {
			r.classifier = c
		}
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(l *log.Logger) Option {
	return func(r *Retrier) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRetrier creates a Retrier with the default classifier and delay.
func NewRetrier(opts ...Option) *Retrier {
	r := &Retrier{
		classifier: NewMessageClassifier(),
		delay:      DefaultRetryDelay,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs fn. A transient failure is retried once after the delay and the
// retry's outcome is returned as is. Other failures return immediately.
func (r *Retrier) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}
	if !r.classifier.IsTransient(err) {
		return err
	}

	r.logger.Warn("transient store failure, retrying", "op", op, "delay", r.delay, "err", err)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.delay):
	}

	if err := fn(ctx); err != nil {
		r.logger.Error("store retry failed", "op", op, "err", err)
		return err
	}
	r.logger.Info("store retry succeeded", "op", op)
	return nil
}

// Run is Do for operations that produce a value.
func Run[T any](ctx context.Context, r *Retrier, op string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}
