// Package lifecycle holds values shared by start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start/stop hook and shutdown sequence.
const DefaultTimeout = 10 * time.Second
