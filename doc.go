// Package backlog is an in-process asynchronous text-file log engine.
//
// Producers enqueue lines from any goroutine without blocking; a single
// background writer drains the queue on a fixed interval, rolls the output
// file over by age or size, and appends each batch in one write. Two
// shutdown paths exist with different delivery guarantees: Stop drains the
// queue completely before closing the file, Dispose discards whatever is
// still queued and tears down immediately.
package backlog
