package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/store"
)

// mockStore is a recording implementation of the store boundary. It keeps an
// ordered operation log so tests can assert detach-before-attach ordering.
type mockStore struct {
	mu       sync.Mutex
	ops      []string
	writes   []map[string]any
	cleanups []string
	subs     []*mockSub
	writeErr error
	subErr   error
}

type mockSub struct {
	path   string
	fn     func(any)
	active bool
}

var _ store.Store = (*mockStore)(nil)

func (s *mockStore) ReadPath(ctx context.Context, path string) (any, error) {
	return nil, nil
}

func (s *mockStore) SubscribeToValue(path string, fn func(value any)) (store.Unsubscribe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subErr != nil {
		return nil, s.subErr
	}

	sub := &mockSub{path: path, fn: fn, active: true}
	s.subs = append(s.subs, sub)
	idx := len(s.subs) - 1
	s.ops = append(s.ops, fmt.Sprintf("subscribe:%d", idx))

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		sub.active = false
		s.ops = append(s.ops, fmt.Sprintf("unsubscribe:%d", idx))
	}, nil
}

func (s *mockStore) AtomicMultiWrite(ctx context.Context, values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes = append(s.writes, values)
	s.ops = append(s.ops, "write")
	return nil
}

func (s *mockStore) RegisterOnDisconnectCleanup(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, path)
	s.ops = append(s.ops, "cleanup:"+path)
	return nil
}

// signal delivers a connectivity value to every active subscriber.
func (s *mockStore) signal(value any) {
	s.mu.Lock()
	var fns []func(any)
	for _, sub := range s.subs {
		if sub.active {
			fns = append(fns, sub.fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

func (s *mockStore) activeSubs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sub := range s.subs {
		if sub.active {
			n++
		}
	}
	return n
}

func (s *mockStore) opLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

func (s *mockStore) allWrites() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.writes...)
}

// capturePublisher records every published domain event.
type capturePublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *capturePublisher) Publish(event domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) all() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Event(nil), p.events...)
}

func (p *capturePublisher) byType(t domain.EventType) []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// fakePresence records every Attach call.
type fakePresence struct {
	mu       sync.Mutex
	attached []*domain.Identity
	err      error
}

func (f *fakePresence) Attach(identity *domain.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = append(f.attached, identity)
	return f.err
}

func (f *fakePresence) calls() []*domain.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Identity(nil), f.attached...)
}

// fakeQueue records every enqueued identity.
type fakeQueue struct {
	mu       sync.Mutex
	enqueued []*domain.Identity
}

func (f *fakeQueue) Enqueue(identity *domain.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, identity)
}

func (f *fakeQueue) calls() []*domain.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Identity(nil), f.enqueued...)
}

// mockExchanger is a func-field native credential exchanger.
type mockExchanger struct {
	ExchangeFunc func(ctx context.Context, scopes []string) (string, error)
}

func (m *mockExchanger) Exchange(ctx context.Context, scopes []string) (string, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, scopes)
	}
	return "", nil
}
