// FILE: compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/kelpline/backlog"
)

// FastHTTPAdapter wraps backlog.Logger to implement fasthttp's Logger
// interface. Messages are tagged with a severity keyword detected from their
// content since the underlying engine carries plain text lines.
type FastHTTPAdapter struct {
	logger *backlog.Logger
	tagger func(string) string // Function to detect a severity tag from message content
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *backlog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger: logger,
		tagger: DetectSeverityTag, // Default tag detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithTagger sets a custom function to derive the severity tag from message content
func WithTagger(tagger func(string) string) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.tagger = tagger
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	tag := "info"
	if a.tagger != nil {
		if detected := a.tagger(msg); detected != "" {
			tag = detected
		}
	}

	a.logger.WriteLine(fmt.Sprintf("fasthttp %s %s", tag, msg))
}

// DetectSeverityTag attempts to detect a severity keyword from message content
func DetectSeverityTag(msg string) string {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return "error"
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "warning") ||
		strings.Contains(msgLower, "deprecated") {
		return "warn"
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return "debug"
	}

	return "info"
}
