package compat

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kelpline/backlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestCompatLogger creates a started logger for adapter tests
func createTestCompatLogger(t *testing.T) (*backlog.Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()
	logger, err := backlog.NewBuilder().
		Directory(tmpDir).
		FlushIntervalS(1).
		Build()
	require.NoError(t, err)

	err = logger.Start()
	require.NoError(t, err)
	t.Cleanup(logger.Dispose)

	return logger, tmpDir
}

// readLogFile reads a log file, retrying briefly to await async writes
func readLogFile(t *testing.T, dir string, expectedLines int) []string {
	t.Helper()

	for i := 0; i < 40; i++ {
		files, err := os.ReadDir(dir)
		if err == nil && len(files) > 0 {
			logFilePath := filepath.Join(dir, files[0].Name())
			logFile, err := os.Open(logFilePath)
			if err == nil {
				scanner := bufio.NewScanner(logFile)
				var readLines []string
				for scanner.Scan() {
					readLines = append(readLines, scanner.Text())
				}
				logFile.Close()
				if len(readLines) >= expectedLines {
					return readLines
				}
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatalf("log file in %s never reached %d lines", dir, expectedLines)
	return nil
}

func TestFastHTTPAdapterPrintf(t *testing.T) {
	logger, dir := createTestCompatLogger(t)
	adapter := NewFastHTTPAdapter(logger)

	adapter.Printf("serving connection from %s", "10.0.0.1")
	require.NoError(t, logger.Flush(2*time.Second))

	lines := readLogFile(t, dir, 1)
	assert.Contains(t, lines[0], "fasthttp info serving connection from 10.0.0.1")
}

func TestFastHTTPAdapterDetectsSeverity(t *testing.T) {
	logger, dir := createTestCompatLogger(t)
	adapter := NewFastHTTPAdapter(logger)

	adapter.Printf("error when serving connection")
	require.NoError(t, logger.Flush(2*time.Second))

	lines := readLogFile(t, dir, 1)
	assert.Contains(t, lines[0], "fasthttp error ")
}

func TestFastHTTPAdapterCustomTagger(t *testing.T) {
	logger, dir := createTestCompatLogger(t)
	adapter := NewFastHTTPAdapter(logger, WithTagger(func(msg string) string {
		return "audit"
	}))

	adapter.Printf("client connected")
	require.NoError(t, logger.Flush(2*time.Second))

	lines := readLogFile(t, dir, 1)
	assert.Contains(t, lines[0], "fasthttp audit client connected")
}

func TestDetectSeverityTag(t *testing.T) {
	testCases := []struct {
		msg  string
		want string
	}{
		{"request failed with 502", "error"},
		{"PANIC recovered in handler", "error"},
		{"deprecated option used", "warn"},
		{"warning: slow response", "warn"},
		{"trace: entering handler", "debug"},
		{"listening on :8080", "info"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, DetectSeverityTag(tc.msg), "msg: %s", tc.msg)
	}
}

func TestGnetAdapterLevels(t *testing.T) {
	logger, dir := createTestCompatLogger(t)
	adapter := NewGnetAdapter(logger)

	adapter.Debugf("conn %d opened", 1)
	adapter.Infof("listening on %s", ":9000")
	adapter.Warnf("slow consumer")
	adapter.Errorf("read failed: %v", os.ErrClosed)
	require.NoError(t, logger.Flush(2*time.Second))

	lines := readLogFile(t, dir, 4)
	assert.Contains(t, lines[0], "gnet debug conn 1 opened")
	assert.Contains(t, lines[1], "gnet info listening on :9000")
	assert.Contains(t, lines[2], "gnet warn slow consumer")
	assert.Contains(t, lines[3], "gnet error read failed")
}

func TestGnetAdapterFatalf(t *testing.T) {
	logger, dir := createTestCompatLogger(t)

	var fatalMsg string
	adapter := NewGnetAdapter(logger, WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))

	adapter.Fatalf("engine crashed: %s", "epoll error")

	assert.Equal(t, "engine crashed: epoll error", fatalMsg)

	// Fatalf flushes before invoking the handler, so the line is on disk
	lines := readLogFile(t, dir, 1)
	assert.Contains(t, lines[0], "gnet fatal engine crashed: epoll error")
}
