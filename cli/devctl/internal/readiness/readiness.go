// Package readiness polls a predicate until it succeeds or the attempt
// budget runs out. It is the only retry loop in devctl.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devkit/cli/devctl/internal/execx"
)

// ErrNotReady matches every NotReadyError via errors.Is.
var ErrNotReady = errors.New("not ready")

// Policy is a fixed-interval, bounded poll.
type Policy struct {
	Attempts int
	Interval time.Duration
	// Notify, when set, is called after each failed attempt.
	Notify func(attempt int, err error)
}

// NotReadyError is returned once every attempt failed.
type NotReadyError struct {
	Attempts int
	Last     error
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("not ready after %d attempts: %v", e.Attempts, e.Last)
}

func (e *NotReadyError) Unwrap() error { return e.Last }

func (e *NotReadyError) Is(target error) bool { return target == ErrNotReady }

// Poll calls check until it returns nil. A check that cannot even start its
// command (execx.SetupError) is not retried. Context cancellation stops the
// wait between attempts.
func Poll(ctx context.Context, p Policy, check func(context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; ; attempt++ {
		err := check(ctx)
		if err == nil {
			return nil
		}
		var se *execx.SetupError
		if errors.As(err, &se) {
			return err
		}
		if p.Notify != nil {
			p.Notify(attempt, err)
		}
		if attempt >= attempts {
			return &NotReadyError{Attempts: attempt, Last: err}
		}
		timer := time.NewTimer(p.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
