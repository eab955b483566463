package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/store"
)

// PresenceMonitor owns the single live connectivity subscription for the
// active identity. Each identity transition detaches the previous
// subscription before a new one may be created, so two subscriptions from
// one monitor never coexist.
type PresenceMonitor struct {
	store  store.Store
	paths  Paths
	logger *zap.Logger
	newKey func() string

	mu     sync.Mutex
	active store.Unsubscribe
}

// NewPresenceMonitor creates a new presence monitor
func NewPresenceMonitor(st store.Store, paths Paths, logger *zap.Logger) *PresenceMonitor {
	return &PresenceMonitor{
		store:  st,
		paths:  paths,
		logger: logger,
		newKey: uuid.NewString,
	}
}

// Attach switches the monitor to identity. Any previously active
// subscription is detached first; a nil identity (signed out) detaches and
// subscribes nothing. On each connected signal a fresh presence entry is
// appended under the identity's presence log and registered for store-native
// on-disconnect retraction.
func (m *PresenceMonitor) Attach(identity *domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.active()
		m.active = nil
	}
	if identity == nil {
		return nil
	}

	uid := identity.ID
	profile := identity.Public()

	unsub, err := m.store.SubscribeToValue(m.paths.Connectivity, func(value any) {
		connected, _ := value.(bool)
		if !connected {
			return
		}
		m.publish(uid, profile)
	})
	if err != nil {
		return err
	}

	m.active = unsub
	return nil
}

// publish appends one connection's presence entry and ties its retraction to
// that connection's eventual drop. Failures here belong to the listener's
// owning context; they are surfaced through the log, not swallowed into a
// retry.
func (m *PresenceMonitor) publish(uid string, profile domain.PublicProfile) {
	ctx := context.Background()
	entry := m.paths.PresenceEntry(uid, m.newKey())
	record := domain.PresenceRecord{
		AuthenticatedAt: store.ServerTimestamp{},
		User:            profile,
	}

	if err := m.store.AtomicMultiWrite(ctx, map[string]any{entry: record.Value()}); err != nil {
		m.logger.Error("failed to publish presence", zap.String("path", entry), zap.Error(err))
		return
	}
	if err := m.store.RegisterOnDisconnectCleanup(ctx, entry); err != nil {
		m.logger.Error("failed to register presence cleanup", zap.String("path", entry), zap.Error(err))
	}
}
