// FILE: state.go
package backlog

import (
	"sync/atomic"
)

// Lifecycle phases: Idle -> Active -> {Stopped, Disposed}. Disposed is also
// reachable directly from Idle or Active. A stopped or disposed logger only
// logs again through a fresh Start, which allocates a new file.
const (
	phaseIdle int32 = iota
	phaseActive
	phaseStopped
	phaseDisposed
)

// State encapsulates the runtime state of the logger
type State struct {
	Phase         atomic.Int32
	DisposeCalled atomic.Bool
	WriterExited  atomic.Bool // Tracks if the writer goroutine is running or has exited

	CurrentFile atomic.Value // stores *os.File
	CurrentPath atomic.Value // stores string
	CurrentSize atomic.Int64 // Size of the current log file

	TotalWritten       atomic.Uint64 // Entries appended to disk
	TotalRollovers     atomic.Uint64 // Successful file replacements
	DiscardedOnDispose atomic.Uint64 // Entries abandoned by Dispose
}
