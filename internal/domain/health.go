package domain

import "context"

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	// Check runs every registered check and reports per-dependency status.
	// ok is false when any check failed.
	Check(ctx context.Context) (status map[string]string, ok bool)
}
