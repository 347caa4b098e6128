package repository

import (
	"context"
	"fmt"

	"gasp-api/internal/models"
)

// nearestRadiusMeters bounds FindNearestLocation.
const nearestRadiusMeters = 10000

// Conn is a connection leased from a Store for the duration of one request.
// Close must be called exactly once on every path; it returns the lease.
type Conn interface {
	InsertLocation(ctx context.Context, loc models.GaspLocation) error
	Close()
}

// Store is the persistence backend for canonical location records.
type Store interface {
	// Connect leases a connection for a single request.
	Connect(ctx context.Context) (Conn, error)

	// FindNearestLocation returns the stored record closest to (lat, lng) within 10km,
	// or (nil, nil) when there is none.
	FindNearestLocation(ctx context.Context, lat, lng float64) (*models.GaspLocation, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// StoreError wraps a failure from the persistence backend.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
