// FILE: builder.go
package backlog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
// The logger is configured but not started.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()

	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return logger, nil
}

// Directory sets the output directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// NamePrefix sets the optional file name prefix.
func (b *Builder) NamePrefix(prefix string) *Builder {
	b.cfg.NamePrefix = prefix
	return b
}

// IncludeMachineName embeds the lower-cased hostname in file names.
func (b *Builder) IncludeMachineName(include bool) *Builder {
	b.cfg.IncludeMachineName = include
	return b
}

// RolloverMinutes sets the age trigger in minutes, 0 disables.
func (b *Builder) RolloverMinutes(minutes int64) *Builder {
	b.cfg.RolloverMinutes = minutes
	return b
}

// RolloverSizeMB sets the size trigger in megabytes, 0 disables.
func (b *Builder) RolloverSizeMB(size int64) *Builder {
	b.cfg.RolloverSizeMB = size
	return b
}

// FlushIntervalS sets the seconds between queue drains.
func (b *Builder) FlushIntervalS(seconds int64) *Builder {
	b.cfg.FlushIntervalS = seconds
	return b
}

// TimestampFormat sets the entry timestamp prefix format.
func (b *Builder) TimestampFormat(format string) *Builder {
	b.cfg.TimestampFormat = format
	return b
}

// MaxErrorReportsPerS sets the error channel throttle, 0 for unlimited.
func (b *Builder) MaxErrorReportsPerS(n int64) *Builder {
	b.cfg.MaxErrorReportsPerS = n
	return b
}

// InternalErrorsToStderr mirrors internal diagnostics to stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Example usage:
//
//	logger, err := backlog.NewBuilder().
//		Directory("/var/log/app").
//		NamePrefix("app").
//		RolloverSizeMB(10).
//		Build()
//
//	if err == nil {
//		_ = logger.Start()
//		defer logger.Dispose()
//		logger.WriteLine("logger initialized")
//	}
