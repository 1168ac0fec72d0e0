// FILE: constant.go
package backlog

import (
	"time"
)

// Timestamp patterns
const (
	// Prefix stamped onto every entry
	defaultEntryTimeFormat = "15:04:05.00"
	// File name timestamp, extended to centiseconds in nextFilePath
	fileTimeFormat = "20060102150405"
)

// Output files are plain UTF-8 text
const fileExtension = "txt"

// Separator line opening every error block
const errorSeparator = "--------------------------------------------------"

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Bounded wait for the writer to exit during Dispose
	disposeWaitTime = 250 * time.Millisecond
)

// Capacity of the out-of-band error channel
const errorChanCapacity = 64
