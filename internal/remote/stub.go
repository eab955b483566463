package remote

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// StubClient is an in-memory AuthClient used by tests and the demo binary.
// Behavior is overridden per operation through the func fields; a nil func
// returns zero values.
type StubClient struct {
	SignInWithPasswordFunc        func(ctx context.Context, email, password string) (*AuthResult, error)
	CreateAccountWithPasswordFunc func(ctx context.Context, email, password string) (*AuthResult, error)
	SendPasswordResetEmailFunc    func(ctx context.Context, email string) error
	SignInWithPopupFunc           func(ctx context.Context, provider Provider) (*AuthResult, error)
	SignInWithRedirectFunc        func(ctx context.Context, provider Provider) error
	GetRedirectResultFunc         func(ctx context.Context) (*AuthResult, error)
	SignInWithCredentialFunc      func(ctx context.Context, credential Credential) (*AuthResult, error)

	mu        sync.Mutex
	listeners map[int]func(string)
	nextID    int
}

var _ AuthClient = (*StubClient)(nil)

func (c *StubClient) SignInWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	if c.SignInWithPasswordFunc != nil {
		return c.SignInWithPasswordFunc(ctx, email, password)
	}
	return nil, nil
}

func (c *StubClient) CreateAccountWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	if c.CreateAccountWithPasswordFunc != nil {
		return c.CreateAccountWithPasswordFunc(ctx, email, password)
	}
	return nil, nil
}

func (c *StubClient) SendPasswordResetEmail(ctx context.Context, email string) error {
	if c.SendPasswordResetEmailFunc != nil {
		return c.SendPasswordResetEmailFunc(ctx, email)
	}
	return nil
}

func (c *StubClient) SignInWithPopup(ctx context.Context, provider Provider) (*AuthResult, error) {
	if c.SignInWithPopupFunc != nil {
		return c.SignInWithPopupFunc(ctx, provider)
	}
	return nil, nil
}

func (c *StubClient) SignInWithRedirect(ctx context.Context, provider Provider) error {
	if c.SignInWithRedirectFunc != nil {
		return c.SignInWithRedirectFunc(ctx, provider)
	}
	return nil
}

func (c *StubClient) GetRedirectResult(ctx context.Context) (*AuthResult, error) {
	if c.GetRedirectResultFunc != nil {
		return c.GetRedirectResultFunc(ctx)
	}
	return nil, nil
}

func (c *StubClient) SignInWithCredential(ctx context.Context, credential Credential) (*AuthResult, error) {
	if c.SignInWithCredentialFunc != nil {
		return c.SignInWithCredentialFunc(ctx, credential)
	}
	return nil, nil
}

// OnIdentityChanged registers an identity listener. Notifications are fired
// through EmitIdentityChanged.
func (c *StubClient) OnIdentityChanged(fn func(idToken string)) Unsubscribe {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listeners == nil {
		c.listeners = make(map[int]func(string))
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// EmitIdentityChanged delivers an identity token to every registered
// listener, sequentially, mirroring the remote service's one-at-a-time
// delivery guarantee.
func (c *StubClient) EmitIdentityChanged(idToken string) {
	c.mu.Lock()
	fns := make([]func(string), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(idToken)
	}
}

// ListenerCount reports the number of active identity listeners.
func (c *StubClient) ListenerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

// IdentityToken builds a signed identity token for stub sign-in flows.
func IdentityToken(id, email, name string) (string, error) {
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: id},
		Email:            email,
		Name:             name,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("este-stub"))
}
