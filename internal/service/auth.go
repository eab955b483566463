package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/events"
	"github.com/jvorcak/este/internal/remote"
	"github.com/jvorcak/este/internal/utils"
)

// Credentials is the sign-in/sign-up input.
type Credentials struct {
	Email    string
	Password string
}

// AuthGateway drives sign-in, sign-up and password reset against the remote
// auth service. Field validation always precedes a remote call, and every
// entry point applies the same catalog-then-translate failure policy.
type AuthGateway struct {
	client     remote.AuthClient
	exchanger  remote.NativeCredentialExchanger
	catalog    remote.Catalog
	translator *ErrorTranslator
	validator  *utils.CredentialValidator
	events     events.Publisher
	logger     *zap.Logger
}

// NewAuthGateway creates a new auth gateway. exchanger may be nil outside
// mobile contexts.
func NewAuthGateway(
	client remote.AuthClient,
	exchanger remote.NativeCredentialExchanger,
	catalog remote.Catalog,
	translator *ErrorTranslator,
	validator *utils.CredentialValidator,
	publisher events.Publisher,
	logger *zap.Logger,
) *AuthGateway {
	return &AuthGateway{
		client:     client,
		exchanger:  exchanger,
		catalog:    catalog,
		translator: translator,
		validator:  validator,
		events:     publisher,
		logger:     logger,
	}
}

// SignIn authenticates with the given provider kind. The password kind
// validates credentials locally first; social kinds delegate to the
// federated flow. A nil result with a nil error means the sign-in continues
// through a full-page redirect and resolves via the reconciler's
// redirect-result check.
func (g *AuthGateway) SignIn(ctx context.Context, kind domain.ProviderKind, creds Credentials) (*remote.AuthResult, error) {
	if kind != domain.ProviderPassword {
		return g.FederatedSignIn(ctx, kind)
	}

	meta := newRequestMeta()
	g.publish(domain.EventAuthSignIn, domain.StatusPending, nil, nil, meta)

	if err := g.validator.ValidateCredentials(creds.Email, creds.Password); err != nil {
		g.publish(domain.EventAuthSignIn, domain.StatusError, nil, err, meta)
		return nil, err
	}

	result, err := g.client.SignInWithPassword(ctx, creds.Email, creds.Password)
	if err != nil {
		err = g.normalize(err)
		g.publish(domain.EventAuthSignIn, domain.StatusError, nil, err, meta)
		return nil, err
	}

	g.publish(domain.EventAuthSignIn, domain.StatusSuccess, nil, nil, meta)
	return result, nil
}

// FederatedSignIn delegates authentication to a social provider through a
// popup flow. A blocked popup falls back to a full-page redirect instead of
// failing; any other failure propagates unchanged.
func (g *AuthGateway) FederatedSignIn(ctx context.Context, kind domain.ProviderKind) (*remote.AuthResult, error) {
	provider, err := providerFor(kind)
	if err != nil {
		return nil, err
	}

	meta := newRequestMeta()
	g.publish(domain.EventAuthSignIn, domain.StatusPending, nil, nil, meta)

	result, err := g.client.SignInWithPopup(ctx, provider)
	if err != nil {
		var ae *remote.AuthError
		if errors.As(err, &ae) && ae.Code == remote.CodePopupBlocked {
			g.logger.Info("popup blocked, falling back to redirect",
				zap.String("provider", string(kind)))
			if err := g.client.SignInWithRedirect(ctx, provider); err != nil {
				g.publish(domain.EventAuthSignIn, domain.StatusError, nil, err, meta)
				return nil, err
			}
			// sign-in resumes after the page reload
			return nil, nil
		}
		g.publish(domain.EventAuthSignIn, domain.StatusError, nil, err, meta)
		return nil, err
	}

	g.publish(domain.EventAuthSignIn, domain.StatusSuccess, nil, nil, meta)
	return result, nil
}

// NativeFederatedSignIn is the mobile-context federated flow: it exchanges a
// native provider credential for a remote-auth sign-in, bypassing the web
// popup/redirect branch entirely. A user-cancelled exchange surfaces as a
// generic cancellation error.
func (g *AuthGateway) NativeFederatedSignIn(ctx context.Context, kind domain.ProviderKind) (*remote.AuthResult, error) {
	provider, err := providerFor(kind)
	if err != nil {
		return nil, err
	}
	if g.exchanger == nil {
		return nil, &domain.ProviderNotSupportedError{Kind: kind}
	}

	meta := newRequestMeta()
	g.publish(domain.EventAuthSignIn, domain.StatusPending, nil, nil, meta)

	accessToken, err := g.exchanger.Exchange(ctx, provider.Scopes)
	if err != nil {
		if errors.Is(err, remote.ErrExchangeCancelled) {
			err = &domain.CancelledError{Message: "sign in cancelled"}
		}
		g.publish(domain.EventAuthSignIn, domain.StatusError, nil, err, meta)
		return nil, err
	}

	result, err := g.client.SignInWithCredential(ctx, remote.Credential{
		Provider:    kind,
		AccessToken: accessToken,
	})
	if err != nil {
		err = g.normalize(err)
		g.publish(domain.EventAuthSignIn, domain.StatusError, nil, err, meta)
		return nil, err
	}

	g.publish(domain.EventAuthSignIn, domain.StatusSuccess, nil, nil, meta)
	return result, nil
}

// SignUp creates a password account after local credential validation.
func (g *AuthGateway) SignUp(ctx context.Context, creds Credentials) (*remote.AuthResult, error) {
	meta := newRequestMeta()
	g.publish(domain.EventAuthSignUp, domain.StatusPending, nil, nil, meta)

	if err := g.validator.ValidateCredentials(creds.Email, creds.Password); err != nil {
		g.publish(domain.EventAuthSignUp, domain.StatusError, nil, err, meta)
		return nil, err
	}

	result, err := g.client.CreateAccountWithPassword(ctx, creds.Email, creds.Password)
	if err != nil {
		err = g.normalize(err)
		g.publish(domain.EventAuthSignUp, domain.StatusError, nil, err, meta)
		return nil, err
	}

	g.publish(domain.EventAuthSignUp, domain.StatusSuccess, nil, nil, meta)
	return result, nil
}

// ResetPassword requests a password reset email after validating the email
// shape locally.
func (g *AuthGateway) ResetPassword(ctx context.Context, email string) error {
	meta := newRequestMeta()
	g.publish(domain.EventAuthResetPassword, domain.StatusPending, nil, nil, meta)

	if err := g.validator.ValidateEmail(email); err != nil {
		g.publish(domain.EventAuthResetPassword, domain.StatusError, nil, err, meta)
		return err
	}

	if err := g.client.SendPasswordResetEmail(ctx, email); err != nil {
		err = g.normalize(err)
		g.publish(domain.EventAuthResetPassword, domain.StatusError, nil, err, meta)
		return err
	}

	g.publish(domain.EventAuthResetPassword, domain.StatusSuccess, nil, nil, meta)
	return nil
}

// normalize applies the catalog-then-map policy: codes with a catalog
// message become validation errors, everything else passes through
// unchanged.
func (g *AuthGateway) normalize(err error) error {
	var ae *remote.AuthError
	if errors.As(err, &ae) && g.catalog.HasMessageFor(ae.Code) {
		return g.translator.Translate(ae.Code)
	}
	return err
}

func (g *AuthGateway) publish(t domain.EventType, status domain.EventStatus, identity *domain.Identity, err error, meta domain.EventMeta) {
	g.events.Publish(domain.Event{
		Type:     t,
		Status:   status,
		Identity: identity,
		Err:      err,
		Meta:     meta,
	})
}

func newRequestMeta() domain.EventMeta {
	return domain.EventMeta{RequestID: uuid.NewString()}
}

// providerFor resolves a provider kind to its federated provider
// description. Kinds without an implementation fail with a typed error
// rather than a runtime assertion.
func providerFor(kind domain.ProviderKind) (remote.Provider, error) {
	switch kind {
	case domain.ProviderFacebook:
		return remote.Provider{Kind: kind, Scopes: domain.FacebookScopes}, nil
	default:
		return remote.Provider{}, &domain.ProviderNotSupportedError{Kind: kind}
	}
}
