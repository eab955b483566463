package service

import (
	"context"

	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/remote"
)

// IAuthGateway defines the interface for the auth gateway
type IAuthGateway interface {
	SignIn(ctx context.Context, kind domain.ProviderKind, creds Credentials) (*remote.AuthResult, error)
	FederatedSignIn(ctx context.Context, kind domain.ProviderKind) (*remote.AuthResult, error)
	NativeFederatedSignIn(ctx context.Context, kind domain.ProviderKind) (*remote.AuthResult, error)
	SignUp(ctx context.Context, creds Credentials) (*remote.AuthResult, error)
	ResetPassword(ctx context.Context, email string) error
}

// IUserPersistence defines the interface for user persistence
type IUserPersistence interface {
	SaveUser(ctx context.Context, identity *domain.Identity) error
}

// IPresenceMonitor defines the interface for the presence monitor
type IPresenceMonitor interface {
	Attach(identity *domain.Identity) error
}

// PersistQueue schedules fire-and-forget user saves off the listener path.
type PersistQueue interface {
	Enqueue(identity *domain.Identity)
}

// Compile-time checks to ensure structs implement their interfaces
var (
	_ IAuthGateway     = (*AuthGateway)(nil)
	_ IUserPersistence = (*UserPersistence)(nil)
	_ IPresenceMonitor = (*PresenceMonitor)(nil)
)
