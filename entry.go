// FILE: entry.go
package backlog

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// entryFormatter stamps raw messages into ready-to-write lines. Entries are
// immutable once created: timestamp prefix, message, line terminator.
type entryFormatter struct {
	timestampFormat string
}

func newEntryFormatter(timestampFormat string) *entryFormatter {
	if timestampFormat == "" {
		timestampFormat = defaultEntryTimeFormat
	}
	return &entryFormatter{timestampFormat: timestampFormat}
}

// format prepends a local timestamp and appends the line terminator.
// Pure, no failure modes.
func (f *entryFormatter) format(now time.Time, message string) []byte {
	buf := make([]byte, 0, len(f.timestampFormat)+len(message)+2)
	buf = now.AppendFormat(buf, f.timestampFormat)
	if message != "" {
		buf = append(buf, ' ')
		buf = append(buf, message...)
	}
	buf = append(buf, '\n')
	return buf
}

// formatError renders err as a multi-line block: separator, caller header,
// full representation, message, and inner error (empty line if none). Each
// line becomes its own entry so interleaved messages keep their ordering.
func (f *entryFormatter) formatError(now time.Time, err error, callerFile, callerMethod string, callerLine int) [][]byte {
	if err == nil {
		return nil
	}

	entries := [][]byte{
		f.format(now, errorSeparator),
		f.format(now, fmt.Sprintf("ERROR %s on line %d in %s", callerMethod, callerLine, callerFile)),
	}

	for _, line := range strings.Split(dumpValue(err), "\n") {
		entries = append(entries, f.format(now, line))
	}

	entries = append(entries, f.format(now, err.Error()))

	if inner := errors.Unwrap(err); inner != nil {
		entries = append(entries, f.format(now, inner.Error()))
	} else {
		entries = append(entries, f.format(now, ""))
	}

	return entries
}

// dumpValue renders a value with type and structure information.
func dumpValue(v any) string {
	var b bytes.Buffer

	// Custom dumper for log-friendly, compact output.
	dumper := &spew.ConfigState{
		Indent:                  " ",
		MaxDepth:                10,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	dumper.Fdump(&b, v)

	return string(bytes.TrimSpace(b.Bytes()))
}
