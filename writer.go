// FILE: writer.go
package backlog

import (
	"bytes"
	"errors"
	"os"
	"time"
)

// loopControl carries the channels owned by one writer incarnation. A fresh
// set is created on every Start so a restarted logger never races a previous
// writer's shutdown.
type loopControl struct {
	flushInterval time.Duration
	flushChan     chan chan error
	stopChan      chan stopRequest
	disposeChan   chan struct{}
	done          chan struct{}
}

// stopRequest asks the writer to drain fully, write the footer, and close.
type stopRequest struct {
	caller string
	result chan error
}

func newLoopControl(interval time.Duration) *loopControl {
	return &loopControl{
		flushInterval: interval,
		flushChan:     make(chan chan error, 1),
		stopChan:      make(chan stopRequest, 1),
		disposeChan:   make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// processEntries is the single consumer that owns the output file handle.
// It drains the queue on every tick, on explicit flush requests, and one
// final time on stop. Nothing else touches the handle while it runs.
func (l *Logger) processEntries(ctl *loopControl) {
	defer l.state.WriterExited.Store(true)
	defer close(ctl.done)

	ticker := time.NewTicker(ctl.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := l.flushBatch(); err != nil {
				l.reporter.report(err)
			}

		case confirm := <-ctl.flushChan:
			err := l.flushBatch()
			if err == nil {
				err = l.syncFile()
			} else {
				l.reporter.report(err)
			}
			confirm <- err

		case req := <-ctl.stopChan:
			req.result <- l.finalizeStop(req.caller)
			return

		case <-ctl.disposeChan:
			l.finalizeDispose()
			return
		}
	}
}

// flushBatch applies the rollover policy, then drains the queue and appends
// the whole batch in one write. A rollover failure leaves the queue intact
// so the entries accumulate and are retried on the next cycle; a write
// failure loses the drained batch.
func (l *Logger) flushBatch() error {
	file, _ := l.state.CurrentFile.Load().(*os.File)
	if file == nil || l.policy.shouldRollover(l.state.CurrentSize.Load()) {
		if err := l.rotate(); err != nil {
			return err
		}
	}

	batch := l.queue.drainAll()
	if len(batch) == 0 {
		return nil
	}
	return l.writeBatch(batch)
}

// writeBatch appends the batch to the active file in a single I/O operation.
func (l *Logger) writeBatch(batch [][]byte) error {
	file, _ := l.state.CurrentFile.Load().(*os.File)
	if file == nil {
		return &WriteFailure{Path: l.currentPath(), Entries: len(batch), Err: errors.New("no open log file")}
	}

	var buf bytes.Buffer
	for _, e := range batch {
		buf.Write(e)
	}

	n, err := file.Write(buf.Bytes())
	if n > 0 {
		l.state.CurrentSize.Add(int64(n))
	}
	if err != nil {
		return &WriteFailure{Path: file.Name(), Entries: len(batch), Err: err}
	}

	l.state.TotalWritten.Add(uint64(len(batch)))
	return nil
}

// rotate closes the active file and replaces it with a fresh one. If the
// replacement cannot be created the logger is left without a file; the next
// cycle retries, and queued entries are kept until it succeeds.
func (l *Logger) rotate() error {
	if file, ok := l.state.CurrentFile.Load().(*os.File); ok && file != nil {
		_ = file.Sync()
		if err := file.Close(); err != nil {
			l.internalLog("failed to close log file before rollover: %v\n", err)
		}
		l.state.CurrentFile.Store((*os.File)(nil))
		l.state.CurrentSize.Store(0)
	}

	file, path, err := l.policy.createFile()
	if err != nil {
		return &RolloverError{Path: l.policy.directory, Err: err}
	}

	l.state.CurrentFile.Store(file)
	l.state.CurrentPath.Store(path)
	l.state.CurrentSize.Store(0)
	l.state.TotalRollovers.Add(1)
	return nil
}

// finalizeStop performs the graceful shutdown inside the writer: one final
// full drain, two footer lines (stop timestamp and caller identity), sync,
// close. Rollover is skipped here; delivery wins over rotation on shutdown.
func (l *Logger) finalizeStop(caller string) error {
	var finalErr error

	// A failed rollover may have left no handle; try once more so the
	// final drain has somewhere to go
	if file, _ := l.state.CurrentFile.Load().(*os.File); file == nil {
		finalErr = combineErrors(finalErr, l.rotate())
	}

	batch := l.queue.drainAll()
	if len(batch) > 0 {
		finalErr = combineErrors(finalErr, l.writeBatch(batch))
	}

	f := l.getFormatter()
	now := time.Now()
	footer := [][]byte{
		f.format(now, "logging stopped"),
		f.format(now, "stopped by "+caller),
	}
	finalErr = combineErrors(finalErr, l.writeBatch(footer))
	finalErr = combineErrors(finalErr, l.closeFile())

	return finalErr
}

// finalizeDispose writes the ended marker and closes, swallowing every
// error. The queue was already discarded by Dispose.
func (l *Logger) finalizeDispose() {
	f := l.getFormatter()
	_ = l.writeBatch([][]byte{f.format(time.Now(), "logging ended")})
	_ = l.closeFile()
}

// syncFile flushes the OS buffer of the active file.
func (l *Logger) syncFile() error {
	if file, ok := l.state.CurrentFile.Load().(*os.File); ok && file != nil {
		if err := file.Sync(); err != nil {
			return fmtErrorf("failed to sync log file '%s': %w", file.Name(), err)
		}
	}
	return nil
}

// closeFile syncs and closes the active file and clears the handle.
func (l *Logger) closeFile() error {
	file, ok := l.state.CurrentFile.Load().(*os.File)
	if !ok || file == nil {
		return nil
	}

	var finalErr error
	if err := file.Sync(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to sync log file '%s': %w", file.Name(), err))
	}
	if err := file.Close(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s': %w", file.Name(), err))
	}
	l.state.CurrentFile.Store((*os.File)(nil))
	return finalErr
}
