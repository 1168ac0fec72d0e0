// FILE: rollover.go
package backlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// rolloverPolicy decides, before each flush, whether the active file must be
// replaced, and produces the replacement. It is touched only from Start and
// from the writer goroutine, never concurrently with an in-flight write.
type rolloverPolicy struct {
	directory   string
	prefix      string
	machineName string
	maxAge      time.Duration // 0 disables the time trigger
	maxSize     int64         // bytes, 0 disables the size trigger
	lastRoll    time.Time
	now         func() time.Time
}

func newRolloverPolicy(cfg *Config) *rolloverPolicy {
	p := &rolloverPolicy{
		directory: cfg.Directory,
		prefix:    strings.ToLower(strings.TrimSpace(cfg.NamePrefix)),
		maxAge:    time.Duration(cfg.RolloverMinutes) * time.Minute,
		maxSize:   cfg.RolloverSizeMB * 1024 * 1024,
		now:       time.Now,
	}
	if cfg.IncludeMachineName {
		if host, err := os.Hostname(); err == nil {
			p.machineName = strings.ToLower(host)
		}
	}
	return p
}

// shouldRollover reports whether either trigger fires. currentSize is the
// active file's size before the pending batch is written; the pending batch
// may push the file past the threshold, which is accepted.
func (p *rolloverPolicy) shouldRollover(currentSize int64) bool {
	if p.maxAge > 0 && p.now().Sub(p.lastRoll) > p.maxAge {
		return true
	}
	if p.maxSize > 0 && currentSize > p.maxSize {
		return true
	}
	return false
}

// nextFilePath computes the lower-cased path of a replacement file:
// <directory>/[<prefix>_][<machinename>_]<yyyymmddhhmmssff>.txt
func (p *rolloverPolicy) nextFilePath() string {
	ts := p.now()
	stamp := ts.Format(fileTimeFormat) + fmt.Sprintf("%02d", ts.Nanosecond()/1e7)

	parts := make([]string, 0, 3)
	if p.prefix != "" {
		parts = append(parts, p.prefix)
	}
	if p.machineName != "" {
		parts = append(parts, p.machineName)
	}
	parts = append(parts, stamp)

	name := strings.ToLower(strings.Join(parts, "_")) + "." + fileExtension
	return filepath.Join(p.directory, name)
}

// createFile creates the directory if absent and opens a fresh file. Both
// triggers reset here, so a simultaneous time and size trip still yields a
// single new file.
func (p *rolloverPolicy) createFile() (*os.File, string, error) {
	if err := os.MkdirAll(p.directory, 0755); err != nil {
		return nil, "", fmtErrorf("failed to create log directory '%s': %w", p.directory, err)
	}

	path := p.nextFilePath()
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, "", fmtErrorf("failed to open/create log file '%s': %w", path, err)
	}

	p.lastRoll = p.now()
	return file, path, nil
}
