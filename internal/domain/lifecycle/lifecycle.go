// Package lifecycle holds shared constants for application start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and infrastructure clients.
const DefaultTimeout = 10 * time.Second
