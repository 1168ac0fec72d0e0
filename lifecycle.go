// FILE: lifecycle.go
package backlog

import (
	"os"
	"time"
)

// Stop gracefully shuts the logger down: the writer drains every queued
// entry, appends the two footer lines, syncs, and closes the file. Stop
// blocks until that completes or the timeout elapses (default 2x the flush
// interval). Returns nil when the logger is not active. After Stop, the
// instance only logs again through a fresh Start.
func (l *Logger) Stop(timeout ...time.Duration) error {
	ctl := l.getControl()

	if !l.state.Phase.CompareAndSwap(phaseActive, phaseStopped) {
		return nil // Already stopped, disposed, or never started
	}
	if ctl == nil {
		return nil
	}

	var effectiveTimeout time.Duration
	if len(timeout) > 0 {
		effectiveTimeout = timeout[0]
	} else {
		effectiveTimeout = 2 * ctl.flushInterval
	}

	req := stopRequest{
		caller: callerIdentity(2),
		result: make(chan error, 1),
	}

	select {
	case ctl.stopChan <- req:
	case <-ctl.done:
		// Writer already exited (concurrent Dispose won); nothing to drain
		return nil
	}

	select {
	case err := <-req.result:
		return err
	case <-ctl.done:
		// Writer exited without servicing the request (disposed mid-stop)
		return nil
	case <-time.After(effectiveTimeout):
		return fmtErrorf("writer did not drain within timeout (%v)", effectiveTimeout)
	}
}

// Dispose tears the logger down immediately. Queued entries are discarded,
// the writer gets a bounded window to write the ended marker and close the
// file, and every I/O error on this path is swallowed. Idempotent: calls
// after the first are no-ops. Unlike Stop, Dispose offers no delivery
// guarantee for queued-but-unwritten entries.
func (l *Logger) Dispose() {
	if !l.state.DisposeCalled.CompareAndSwap(false, true) {
		return
	}

	prev := l.state.Phase.Swap(phaseDisposed)

	discarded := l.queue.clear()
	if discarded > 0 {
		l.state.DiscardedOnDispose.Add(uint64(discarded))
	}

	ctl := l.getControl()
	if ctl != nil {
		if prev == phaseActive {
			close(ctl.disposeChan)
		}
		// Bounded best-effort wait; the writer owns the file handle
		select {
		case <-ctl.done:
		case <-time.After(disposeWaitTime):
		}
	}

	// Close any handle the writer left behind, but only once it has exited;
	// closing under a mid-write writer is a use-after-close hazard
	if l.state.WriterExited.Load() {
		if file, ok := l.state.CurrentFile.Load().(*os.File); ok && file != nil {
			_ = file.Sync()
			_ = file.Close()
			l.state.CurrentFile.Store((*os.File)(nil))
		}
	}
}
