// FILE: override.go
package backlog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyConfigString applies string key-value overrides to the logger's
// current configuration. Each override should be in the format "key=value".
// The configuration is cloned before modification to ensure thread safety.
//
// Example:
//
//	logger := backlog.NewLogger()
//	err := logger.ApplyConfigString(
//	    "directory=/var/log/app",
//	    "rollover_size_mb=10",
//	)
func (l *Logger) ApplyConfigString(overrides ...string) error {
	cfg := l.getConfig().Clone()

	var errs []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	return l.ApplyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var sb strings.Builder
	sb.WriteString("backlog: multiple configuration errors:")
	for i, err := range errs {
		errMsg := err.Error()
		// Remove "backlog: " prefix from individual errors to avoid duplication
		errMsg = strings.TrimPrefix(errMsg, "backlog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
// This is the core field mapping logic for string overrides.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "directory":
		cfg.Directory = value
	case "name_prefix":
		cfg.NamePrefix = value
	case "include_machine_name":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for include_machine_name '%s': %w", value, err)
		}
		cfg.IncludeMachineName = boolVal

	case "rollover_minutes":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for rollover_minutes '%s': %w", value, err)
		}
		cfg.RolloverMinutes = intVal
	case "rollover_size_mb":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for rollover_size_mb '%s': %w", value, err)
		}
		cfg.RolloverSizeMB = intVal

	case "flush_interval_s":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for flush_interval_s '%s': %w", value, err)
		}
		cfg.FlushIntervalS = intVal

	case "timestamp_format":
		cfg.TimestampFormat = value

	case "max_error_reports_per_s":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_error_reports_per_s '%s': %w", value, err)
		}
		cfg.MaxErrorReportsPerS = intVal
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
