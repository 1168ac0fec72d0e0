// FILE: errors.go
package backlog

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// Sentinel errors returned by lifecycle operations.
var (
	ErrAlreadyStarted = errors.New("backlog: logger already started")
	ErrNotStarted     = errors.New("backlog: logger not started")
)

// StartupError wraps a failure that makes Start unable to proceed, such as
// an unwritable directory or a failed file creation. There is no retry; a
// logger that cannot create its file cannot operate.
type StartupError struct {
	Path string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("backlog: startup failed for '%s': %v", e.Path, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

// RolloverError wraps a mid-run file creation failure during rollover. The
// writer keeps the pending entries queued and retries on the next cycle.
type RolloverError struct {
	Path string
	Err  error
}

func (e *RolloverError) Error() string {
	return fmt.Sprintf("backlog: rollover failed for '%s': %v", e.Path, e.Err)
}

func (e *RolloverError) Unwrap() error { return e.Err }

// WriteFailure wraps a failed batch append. The batch is not re-queued;
// losing it is the documented data-loss window under disk faults.
type WriteFailure struct {
	Path    string
	Entries int
	Err     error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("backlog: failed to write %d entries to '%s': %v", e.Entries, e.Path, e.Err)
}

func (e *WriteFailure) Unwrap() error { return e.Err }

// errorReporter is the out-of-band signal for background writer errors.
// Reports are throttled so a sustained disk fault cannot flood the channel,
// and sends never block the writer.
type errorReporter struct {
	ch       chan error
	limiter  *rate.Limiter // nil disables throttling
	toStderr bool
	dropped  atomic.Uint64
}

func newErrorReporter() *errorReporter {
	return &errorReporter{
		ch: make(chan error, errorChanCapacity),
	}
}

// configure applies throttling and mirroring settings. Only called while no
// writer is running.
func (r *errorReporter) configure(cfg *Config) {
	if cfg.MaxErrorReportsPerS > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.MaxErrorReportsPerS), int(cfg.MaxErrorReportsPerS))
	} else {
		r.limiter = nil
	}
	r.toStderr = cfg.InternalErrorsToStderr
}

func (r *errorReporter) report(err error) {
	if err == nil {
		return
	}
	if r.toStderr {
		fmt.Fprintf(os.Stderr, "backlog: %v\n", err)
	}
	if r.limiter != nil && !r.limiter.Allow() {
		r.dropped.Add(1)
		return
	}
	select {
	case r.ch <- err:
	default:
		r.dropped.Add(1)
	}
}

// droppedReports returns how many error reports were discarded because the
// channel was full or the rate limit was exceeded.
func (r *errorReporter) droppedReports() uint64 {
	return r.dropped.Load()
}
