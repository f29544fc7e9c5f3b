// Package delivery holds the transports the application serves on.
package delivery

import "context"

// Delivery is a long-running server started by the fx application.
type Delivery interface {
	// Serve blocks until the server stops. A clean shutdown returns nil.
	Serve(ctx context.Context) error
}
