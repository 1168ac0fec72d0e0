// FILE: logger.go
package backlog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Logger is the core struct that encapsulates all engine functionality:
// non-blocking enqueue from any goroutine, one background writer per
// instance, rollover by age or size, and the Stop/Dispose shutdown pair.
type Logger struct {
	currentConfig atomic.Value // stores *Config
	formatter     atomic.Value // stores *entryFormatter
	ctl           atomic.Value // stores *loopControl

	state    State
	queue    *entryQueue
	policy   *rolloverPolicy // owned by the writer goroutine after Start
	reporter *errorReporter

	initMu  sync.Mutex
	flushMu sync.Mutex // Protect concurrent Flush calls
}

// NewLogger creates a new Logger instance with default settings.
// The logger is idle until Start is called.
func NewLogger() *Logger {
	l := &Logger{
		queue:    newEntryQueue(),
		reporter: newErrorReporter(),
	}

	cfg := DefaultConfig()
	l.currentConfig.Store(cfg)
	l.formatter.Store(newEntryFormatter(cfg.TimestampFormat))
	l.reporter.configure(cfg)

	l.state.Phase.Store(phaseIdle)
	l.state.WriterExited.Store(true)
	l.state.CurrentFile.Store((*os.File)(nil))
	l.state.CurrentPath.Store("")

	return l
}

// ApplyConfig applies a validated configuration to the logger.
// This is the primary way applications should configure the logger.
// Reconfiguring an active logger is rejected; Stop it first.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.Phase.Load() == phaseActive {
		return ErrAlreadyStarted
	}

	l.currentConfig.Store(cfg.Clone())
	l.formatter.Store(newEntryFormatter(cfg.TimestampFormat))
	l.reporter.configure(cfg)

	return nil
}

// GetConfig returns a copy of the current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// Start resolves the output directory, creates the initial file, and
// launches the writer. Calling Start on an already active logger returns
// ErrAlreadyStarted. Starting after Stop or Dispose is a fresh start and
// regenerates a new file.
func (l *Logger) Start() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.Phase.Load() == phaseActive {
		return ErrAlreadyStarted
	}

	// Join the previous writer before reusing state it owned
	if prev := l.getControl(); prev != nil {
		select {
		case <-prev.done:
		case <-time.After(disposeWaitTime):
			return fmtErrorf("previous writer still running, cannot start")
		}
	}

	cfg := l.getConfig()

	policy := newRolloverPolicy(cfg)
	file, path, err := policy.createFile()
	if err != nil {
		return &StartupError{Path: cfg.Directory, Err: err}
	}

	l.policy = policy
	l.state.CurrentFile.Store(file)
	l.state.CurrentPath.Store(path)
	l.state.CurrentSize.Store(0)
	if fi, errStat := file.Stat(); errStat == nil {
		l.state.CurrentSize.Store(fi.Size())
	}

	ctl := newLoopControl(time.Duration(cfg.FlushIntervalS) * time.Second)
	l.ctl.Store(ctl)

	l.state.DisposeCalled.Store(false)
	l.state.WriterExited.Store(false)
	l.state.Phase.Store(phaseActive)

	go l.processEntries(ctl)

	return nil
}

// WriteLine enqueues a single message. Fire-and-forget: it never blocks and
// never fails regardless of queue depth. Dropped silently unless the logger
// is active.
func (l *Logger) WriteLine(message string) {
	if l.state.Phase.Load() != phaseActive {
		return
	}
	l.queue.enqueue(l.getFormatter().format(time.Now(), message))
}

// WriteError enqueues the multi-line block describing err and its caller.
// Each line of the block is a separate entry so messages from other
// producers may interleave between lines without corrupting them.
func (l *Logger) WriteError(err error, callerFile, callerMethod string, callerLine int) {
	if err == nil || l.state.Phase.Load() != phaseActive {
		return
	}
	entries := l.getFormatter().formatError(time.Now(), err, callerFile, callerMethod, callerLine)
	l.queue.enqueueAll(entries)
}

// Flush asks the writer to drain the queue and sync the file, then waits for
// confirmation or timeout.
func (l *Logger) Flush(timeout time.Duration) error {
	l.flushMu.Lock()
	defer l.flushMu.Unlock()

	if l.state.Phase.Load() != phaseActive {
		return ErrNotStarted
	}
	ctl := l.getControl()
	if ctl == nil {
		return ErrNotStarted
	}

	confirm := make(chan error, 1)

	select {
	case ctl.flushChan <- confirm:
		// Request sent
	case <-time.After(minWaitTime): // Short timeout to prevent blocking if the writer is stuck
		return fmtErrorf("failed to send flush request to writer (possible deadlock or high load)")
	}

	select {
	case err := <-confirm:
		return err
	case <-ctl.done:
		return ErrNotStarted
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Errors returns the out-of-band channel carrying background writer errors
// (rollover and write failures). The channel is buffered and never blocks
// the writer; unconsumed reports are counted, not queued.
func (l *Logger) Errors() <-chan error {
	return l.reporter.ch
}

// DroppedErrorReports returns how many background error reports were
// discarded because nobody was consuming them fast enough.
func (l *Logger) DroppedErrorReports() uint64 {
	return l.reporter.droppedReports()
}

// FolderLocation returns the configured output directory.
func (l *Logger) FolderLocation() string {
	return l.getConfig().Directory
}

// CurrentFileLocation returns the path of the active log file, or the last
// active one after shutdown.
func (l *Logger) CurrentFileLocation() string {
	return l.currentPath()
}

// QueueDepth returns the number of entries waiting to be written.
func (l *Logger) QueueDepth() int {
	return l.queue.size()
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

func (l *Logger) getFormatter() *entryFormatter {
	return l.formatter.Load().(*entryFormatter)
}

// getControl returns the current writer control set, nil before first Start
func (l *Logger) getControl() *loopControl {
	ctl, _ := l.ctl.Load().(*loopControl)
	return ctl
}

func (l *Logger) currentPath() string {
	path, _ := l.state.CurrentPath.Load().(string)
	return path
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func (l *Logger) internalLog(format string, args ...any) {
	if !l.getConfig().InternalErrorsToStderr {
		return
	}

	// Ensure consistent "backlog: " prefix
	if !strings.HasPrefix(format, "backlog: ") {
		format = "backlog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
