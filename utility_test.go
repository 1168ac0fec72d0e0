// FILE: utility_test.go
package backlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmtErrorfPrefix(t *testing.T) {
	err := fmtErrorf("something broke: %d", 7)
	assert.Equal(t, "backlog: something broke: 7", err.Error())

	// Prefix is not doubled
	err = fmtErrorf("backlog: already prefixed")
	assert.Equal(t, "backlog: already prefixed", err.Error())
}

func TestFmtErrorfWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := fmtErrorf("write failed: %w", cause)
	assert.ErrorIs(t, err, cause)
}

func TestCombineErrors(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")

	assert.NoError(t, combineErrors(nil, nil))
	assert.Equal(t, e1, combineErrors(e1, nil))
	assert.Equal(t, e2, combineErrors(nil, e2))

	combined := combineErrors(e1, e2)
	require.Error(t, combined)
	assert.Contains(t, combined.Error(), "first")
	assert.ErrorIs(t, combined, e2)
}

func TestParseKeyValue(t *testing.T) {
	key, value, err := parseKeyValue("directory=/var/log")
	require.NoError(t, err)
	assert.Equal(t, "directory", key)
	assert.Equal(t, "/var/log", value)

	// Whitespace is trimmed, embedded '=' stays in the value
	key, value, err = parseKeyValue("  name_prefix = a=b ")
	require.NoError(t, err)
	assert.Equal(t, "name_prefix", key)
	assert.Equal(t, "a=b", value)

	_, _, err = parseKeyValue("no-separator")
	assert.Error(t, err)

	_, _, err = parseKeyValue("=value")
	assert.Error(t, err)
}

func TestCallerIdentity(t *testing.T) {
	id := callerIdentity(1)
	assert.Contains(t, id, "TestCallerIdentity")
	assert.Contains(t, id, "utility_test.go")
}
