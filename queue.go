// FILE: queue.go
package backlog

import (
	"sync"
)

// entryQueue is the unbounded multi-producer/single-consumer FIFO shared by
// caller goroutines and the writer. Enqueue never blocks and never rejects;
// sustained production beyond disk throughput grows memory without bound,
// which is the documented trade-off of this design.
type entryQueue struct {
	mu      sync.Mutex
	entries [][]byte
}

func newEntryQueue() *entryQueue {
	return &entryQueue{}
}

// enqueue appends one entry to the tail.
func (q *entryQueue) enqueue(e []byte) {
	q.mu.Lock()
	q.entries = append(q.entries, e)
	q.mu.Unlock()
}

// enqueueAll appends a block of entries under one lock so the block stays
// contiguous relative to concurrent producers.
func (q *entryQueue) enqueueAll(es [][]byte) {
	if len(es) == 0 {
		return
	}
	q.mu.Lock()
	q.entries = append(q.entries, es...)
	q.mu.Unlock()
}

// drainAll atomically removes and returns every entry present at call time,
// in insertion order.
func (q *entryQueue) drainAll() [][]byte {
	q.mu.Lock()
	drained := q.entries
	q.entries = nil
	q.mu.Unlock()
	return drained
}

// tryDequeueOne removes and returns the head entry if present.
func (q *entryQueue) tryDequeueOne() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return nil, false
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head, true
}

func (q *entryQueue) isEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries) == 0
}

func (q *entryQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// clear discards all queued entries and returns how many were dropped.
// Only the immediate dispose path uses this.
func (q *entryQueue) clear() int {
	q.mu.Lock()
	dropped := len(q.entries)
	q.entries = nil
	q.mu.Unlock()
	return dropped
}
