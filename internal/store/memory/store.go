// Package memory provides an in-memory realtime store adapter used by the
// demo binary and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jvorcak/este/internal/store"
)

// Store is an in-memory implementation of the realtime store boundary. It
// keeps a flat path-to-value map, fans values out to per-path subscribers,
// and simulates the store's connection lifecycle: SetConnected drives the
// connectivity path, and dropping the connection runs every registered
// on-disconnect cleanup.
type Store struct {
	mu       sync.Mutex
	values   map[string]any
	subs     map[string]map[int]func(any)
	nextSub  int
	cleanups map[string]struct{}
	now      func() time.Time

	connectivityPath string
}

var _ store.Store = (*Store)(nil)

// NewStore creates a disconnected in-memory store.
func NewStore() *Store {
	return &Store{
		values:           make(map[string]any),
		subs:             make(map[string]map[int]func(any)),
		cleanups:         make(map[string]struct{}),
		now:              time.Now,
		connectivityPath: store.DefaultConnectivityPath,
	}
}

// ReadPath returns the current value at path, or nil when unset.
func (s *Store) ReadPath(ctx context.Context, path string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[path], nil
}

// SubscribeToValue registers fn for changes to path. Values are delivered on
// subsequent writes, not at registration time.
func (s *Store) SubscribeToValue(path string, fn func(value any)) (store.Unsubscribe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[path] == nil {
		s.subs[path] = make(map[int]func(any))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[path][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[path], id)
	}, nil
}

// AtomicMultiWrite commits every entry of values under a single lock and
// then notifies subscribers of each written path. ServerTimestamp sentinels
// inside PresenceRecord-shaped values are resolved to the store's clock.
func (s *Store) AtomicMultiWrite(ctx context.Context, values map[string]any) error {
	s.mu.Lock()
	for path, value := range values {
		s.values[path] = s.resolveTimestamps(value)
	}
	notify := s.collectNotifications(values)
	s.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return nil
}

// RegisterOnDisconnectCleanup marks path for removal when the connection
// drops. The registration is tied to the path, not to this process.
func (s *Store) RegisterOnDisconnectCleanup(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups[path] = struct{}{}
	return nil
}

// SetConnected flips the connectivity signal. Dropping the connection runs
// all pending on-disconnect cleanups before the signal change is delivered.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	changed := map[string]any{s.connectivityPath: connected}
	if !connected {
		for path := range s.cleanups {
			delete(s.values, path)
			changed[path] = nil
		}
		s.cleanups = make(map[string]struct{})
	}
	s.values[s.connectivityPath] = connected
	notify := s.collectNotifications(changed)
	s.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
}

func (s *Store) resolveTimestamps(value any) any {
	if m, ok := value.(map[string]any); ok {
		resolved := make(map[string]any, len(m))
		for k, v := range m {
			if _, isTS := v.(store.ServerTimestamp); isTS {
				resolved[k] = s.now()
				continue
			}
			resolved[k] = v
		}
		return resolved
	}
	return value
}

// collectNotifications must be called with the lock held; the returned
// closures are invoked after the lock is released so subscribers may
// re-enter the store.
func (s *Store) collectNotifications(values map[string]any) []func() {
	var notify []func()
	for path := range values {
		value := s.values[path]
		for _, fn := range s.subs[path] {
			fn := fn
			notify = append(notify, func() { fn(value) })
		}
	}
	return notify
}
