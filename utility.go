// FILE: utility.go
package backlog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "backlog: ") {
		format = "backlog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// callerIdentity describes the function that invoked a lifecycle operation,
// used for the stop footer.
func callerIdentity(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "(unknown)"
	}
	name := "(unknown)"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = filepath.Base(fn.Name())
	}
	return fmt.Sprintf("%s (%s:%d)", name, filepath.Base(file), line)
}
