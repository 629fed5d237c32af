// Package timeouts holds the deadlines the explorer server and its backend
// calls share.
package timeouts

import "time"

const (
	// ReadHeader bounds slow clients sending request headers.
	ReadHeader = 5 * time.Second
	// Shutdown is the grace period for in-flight requests.
	Shutdown = 5 * time.Second
	// Dispatch caps one hand-off to the analytics backend.
	Dispatch = 10 * time.Second
	// OTelShutdown caps the final span flush.
	OTelShutdown = 5 * time.Second
)
