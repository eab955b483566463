package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/events"
	"github.com/jvorcak/este/internal/remote"
	"github.com/jvorcak/este/internal/store"
)

// Stop tears down every listener registered by Start.
type Stop func()

// SessionReconciler wires redirect completion, identity changes and
// connectivity changes into domain events. It owns the session-scoped memory
// of the last dispatched connectivity state so repeat signals of the same
// value never re-emit.
type SessionReconciler struct {
	client   remote.AuthClient
	store    store.Store
	presence IPresenceMonitor
	persist  PersistQueue
	events   events.Publisher
	paths    Paths
	logger   *zap.Logger

	mu         sync.Mutex
	lastOnline *bool
}

// NewSessionReconciler creates a new session reconciler
func NewSessionReconciler(
	client remote.AuthClient,
	st store.Store,
	presence IPresenceMonitor,
	persist PersistQueue,
	publisher events.Publisher,
	paths Paths,
	logger *zap.Logger,
) *SessionReconciler {
	return &SessionReconciler{
		client:   client,
		store:    st,
		presence: presence,
		persist:  persist,
		events:   publisher,
		paths:    paths,
		logger:   logger,
	}
}

// Start acknowledges startup, runs the one-shot redirect-result check, and
// registers the identity-change and connectivity listeners. The returned
// Stop composes every listener disposer and detaches any active presence
// subscription.
func (r *SessionReconciler) Start(ctx context.Context) (Stop, error) {
	r.events.Publish(domain.Event{Type: domain.EventAuthStart})

	r.checkRedirectResult(ctx)

	identityUnsub := r.client.OnIdentityChanged(r.handleIdentityChanged)

	connectivityUnsub, err := r.store.SubscribeToValue(r.paths.Connectivity, r.handleConnectivity)
	if err != nil {
		identityUnsub()
		return nil, fmt.Errorf("subscribe to connectivity: %w", err)
	}

	r.logger.Info("session reconciler started")

	return func() {
		identityUnsub()
		connectivityUnsub()
		if err := r.presence.Attach(nil); err != nil {
			r.logger.Error("failed to detach presence on stop", zap.Error(err))
		}
	}, nil
}

// checkRedirectResult runs exactly once per start: it reports whether a
// federated-redirect sign-in completed while the app was reloading.
func (r *SessionReconciler) checkRedirectResult(ctx context.Context) {
	result, err := r.client.GetRedirectResult(ctx)
	if err != nil {
		r.events.Publish(domain.Event{
			Type:   domain.EventAuthSignIn,
			Status: domain.StatusError,
			Err:    err,
		})
		return
	}
	if result == nil {
		// no redirect sign-in was pending
		return
	}

	identity, err := remote.DecodeIdentityToken(result.IDToken)
	if err != nil {
		r.events.Publish(domain.Event{
			Type:   domain.EventAuthSignIn,
			Status: domain.StatusError,
			Err:    err,
		})
		return
	}

	r.events.Publish(domain.Event{
		Type:     domain.EventAuthSignIn,
		Status:   domain.StatusSuccess,
		Identity: identity,
	})
}

// handleIdentityChanged processes one identity transition to completion:
// decode, re-point the presence subscription, schedule the fire-and-forget
// user save, then emit the identity-changed event. The persistence side
// effect never blocks or fails the event emission.
func (r *SessionReconciler) handleIdentityChanged(idToken string) {
	identity, err := remote.DecodeIdentityToken(idToken)
	if err != nil {
		r.logger.Error("failed to decode identity", zap.Error(err))
		return
	}

	if err := r.presence.Attach(identity); err != nil {
		r.logger.Error("failed to attach presence", zap.Error(err))
	}

	if identity != nil {
		r.persist.Enqueue(identity)
	}

	r.events.Publish(domain.Event{
		Type:     domain.EventAuthIdentityChanged,
		Identity: identity,
	})
}

// handleConnectivity emits online/offline events only on actual transitions
// of the last dispatched value.
func (r *SessionReconciler) handleConnectivity(value any) {
	online, _ := value.(bool)

	r.mu.Lock()
	if r.lastOnline != nil && *r.lastOnline == online {
		r.mu.Unlock()
		return
	}
	r.lastOnline = &online
	r.mu.Unlock()

	eventType := domain.EventConnectivityOffline
	if online {
		eventType = domain.EventConnectivityOnline
	}
	r.events.Publish(domain.Event{Type: eventType})
}
