// Package store defines the boundary to the realtime, multi-client
// synchronized data store.
package store

import (
	"context"
	"errors"
	"fmt"
)

// DefaultConnectivityPath is the store-provided connectivity signal location.
const DefaultConnectivityPath = ".info/connected"

// ServerTimestamp is the sentinel a write resolves to the server's clock.
type ServerTimestamp struct{}

// Unsubscribe detaches a value subscription.
type Unsubscribe func()

// Store is the realtime store boundary. Subscriptions deliver values on
// subsequent changes to the subscribed path; callbacks for a single
// subscription are invoked sequentially.
type Store interface {
	ReadPath(ctx context.Context, path string) (any, error)
	SubscribeToValue(path string, fn func(value any)) (Unsubscribe, error)
	AtomicMultiWrite(ctx context.Context, values map[string]any) error
	RegisterOnDisconnectCleanup(ctx context.Context, path string) error
}

// PermissionDeniedError represents a write rejected by the store's security
// rules.
type PermissionDeniedError struct {
	Path string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Path)
}

// IsPermissionDenied checks if an error is a PermissionDeniedError
func IsPermissionDenied(err error) bool {
	var pd *PermissionDeniedError
	return errors.As(err, &pd)
}
