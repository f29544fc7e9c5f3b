package repository

import "context"

// HealthChecker probes the backing store. A nil error means the store accepts operations.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
