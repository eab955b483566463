// Package remote defines the boundary to the remote auth service. The
// service itself is an external collaborator; this package only carries the
// interfaces, failure shapes and token decoding the orchestration layer
// consumes.
package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/jvorcak/este/internal/domain"
)

// Known remote failure codes.
const (
	CodeEmailTaken      = "auth/email-already-in-use"
	CodeInvalidEmail    = "auth/invalid-email"
	CodeUserNotFound    = "auth/user-not-found"
	CodeWrongPassword   = "auth/wrong-password"
	CodeWeakPassword    = "auth/weak-password"
	CodeTooManyRequests = "auth/too-many-requests"
	CodeNetworkFailure  = "auth/network-request-failed"
	CodePopupBlocked    = "auth/popup-blocked"
	CodePopupClosed     = "auth/popup-closed-by-user"
)

// AuthError is the {code, message} failure shape every async remote
// operation can fail with.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrExchangeCancelled is returned by a NativeCredentialExchanger when the
// user aborts the native flow.
var ErrExchangeCancelled = errors.New("native credential exchange cancelled")

// AuthResult is the payload a successful sign-in resolves with. IDToken is
// the raw identity token; callers decode it with DecodeIdentityToken.
type AuthResult struct {
	IDToken string
}

// Credential is a provider credential obtained outside the web flow,
// exchanged for a remote-auth sign-in.
type Credential struct {
	Provider    domain.ProviderKind
	AccessToken string
}

// Provider describes a federated provider and the scopes requested from it.
type Provider struct {
	Kind   domain.ProviderKind
	Scopes []string
}

// Unsubscribe detaches a listener registration.
type Unsubscribe func()

// AuthClient is the remote auth service boundary. Identity-change
// notifications are delivered one at a time per registration; an empty token
// means signed out.
type AuthClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*AuthResult, error)
	CreateAccountWithPassword(ctx context.Context, email, password string) (*AuthResult, error)
	SendPasswordResetEmail(ctx context.Context, email string) error
	SignInWithPopup(ctx context.Context, provider Provider) (*AuthResult, error)
	SignInWithRedirect(ctx context.Context, provider Provider) error
	GetRedirectResult(ctx context.Context) (*AuthResult, error)
	SignInWithCredential(ctx context.Context, credential Credential) (*AuthResult, error)
	OnIdentityChanged(fn func(idToken string)) Unsubscribe
}

// NativeCredentialExchanger performs the mobile-context credential exchange
// for a federated provider. Implementations return ErrExchangeCancelled when
// the user dismisses the native flow.
type NativeCredentialExchanger interface {
	Exchange(ctx context.Context, scopes []string) (accessToken string, err error)
}
