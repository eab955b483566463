package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/remote"
	"github.com/jvorcak/este/internal/utils"
)

func newTestGateway(client remote.AuthClient, exchanger remote.NativeCredentialExchanger) (*AuthGateway, *capturePublisher) {
	pub := &capturePublisher{}
	catalog := remote.DefaultCatalog()
	gateway := NewAuthGateway(
		client,
		exchanger,
		catalog,
		NewErrorTranslator(catalog),
		utils.NewCredentialValidator(),
		pub,
		zap.NewNop(),
	)
	return gateway, pub
}

func TestAuthGateway_SignIn_Password(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		remoteErr     error
		expectedField string
	}{
		{
			name:          "empty email fails before remote call",
			email:         "",
			password:      "hunter22",
			expectedField: "email",
		},
		{
			name:          "short password fails before remote call",
			email:         "jane@example.com",
			password:      "abc",
			expectedField: "password",
		},
		{
			name:          "wrong password code maps to password field",
			email:         "jane@example.com",
			password:      "hunter22",
			remoteErr:     &remote.AuthError{Code: remote.CodeWrongPassword, Message: "wrong"},
			expectedField: "password",
		},
		{
			name:          "user not found code maps to email field",
			email:         "jane@example.com",
			password:      "hunter22",
			remoteErr:     &remote.AuthError{Code: remote.CodeUserNotFound, Message: "missing"},
			expectedField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remoteCalled := false
			client := &remote.StubClient{
				SignInWithPasswordFunc: func(ctx context.Context, email, password string) (*remote.AuthResult, error) {
					remoteCalled = true
					if tt.remoteErr != nil {
						return nil, tt.remoteErr
					}
					return &remote.AuthResult{IDToken: "token"}, nil
				},
			}
			gateway, _ := newTestGateway(client, nil)

			_, err := gateway.SignIn(context.Background(), domain.ProviderPassword, Credentials{
				Email:    tt.email,
				Password: tt.password,
			})

			require.Error(t, err)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.expectedField, ve.Field)

			if tt.remoteErr == nil {
				assert.False(t, remoteCalled, "validation must precede the remote call")
			}
		})
	}
}

func TestAuthGateway_SignIn_Success(t *testing.T) {
	client := &remote.StubClient{
		SignInWithPasswordFunc: func(ctx context.Context, email, password string) (*remote.AuthResult, error) {
			return &remote.AuthResult{IDToken: "token-1"}, nil
		},
	}
	gateway, pub := newTestGateway(client, nil)

	result, err := gateway.SignIn(context.Background(), domain.ProviderPassword, Credentials{
		Email:    "jane@example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "token-1", result.IDToken)

	signIns := pub.byType(domain.EventAuthSignIn)
	require.Len(t, signIns, 2)
	assert.Equal(t, domain.StatusPending, signIns[0].Status)
	assert.Equal(t, domain.StatusSuccess, signIns[1].Status)
	assert.NotEmpty(t, signIns[0].Meta.RequestID)
	assert.Equal(t, signIns[0].Meta.RequestID, signIns[1].Meta.RequestID)
}

func TestAuthGateway_SignIn_OpaqueErrorPassesThrough(t *testing.T) {
	opaque := &remote.AuthError{Code: "auth/some-new-code", Message: "unexpected"}
	client := &remote.StubClient{
		SignInWithPasswordFunc: func(ctx context.Context, email, password string) (*remote.AuthResult, error) {
			return nil, opaque
		},
	}
	gateway, _ := newTestGateway(client, nil)

	_, err := gateway.SignIn(context.Background(), domain.ProviderPassword, Credentials{
		Email:    "jane@example.com",
		Password: "hunter22",
	})

	assert.Same(t, opaque, err, "codes outside the catalog must pass through unchanged")
}

func TestAuthGateway_FederatedSignIn(t *testing.T) {
	t.Run("popup success", func(t *testing.T) {
		client := &remote.StubClient{
			SignInWithPopupFunc: func(ctx context.Context, provider remote.Provider) (*remote.AuthResult, error) {
				assert.Equal(t, domain.ProviderFacebook, provider.Kind)
				assert.Equal(t, domain.FacebookScopes, provider.Scopes)
				return &remote.AuthResult{IDToken: "token-fb"}, nil
			},
		}
		gateway, _ := newTestGateway(client, nil)

		result, err := gateway.FederatedSignIn(context.Background(), domain.ProviderFacebook)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "token-fb", result.IDToken)
	})

	t.Run("blocked popup falls back to redirect", func(t *testing.T) {
		redirected := false
		client := &remote.StubClient{
			SignInWithPopupFunc: func(ctx context.Context, provider remote.Provider) (*remote.AuthResult, error) {
				return nil, &remote.AuthError{Code: remote.CodePopupBlocked, Message: "blocked"}
			},
			SignInWithRedirectFunc: func(ctx context.Context, provider remote.Provider) error {
				redirected = true
				return nil
			},
		}
		gateway, _ := newTestGateway(client, nil)

		result, err := gateway.FederatedSignIn(context.Background(), domain.ProviderFacebook)
		require.NoError(t, err)
		assert.Nil(t, result, "redirect flow resolves after reload, not inline")
		assert.True(t, redirected)
	})

	t.Run("other popup failure propagates unchanged", func(t *testing.T) {
		popupErr := &remote.AuthError{Code: remote.CodePopupClosed, Message: "closed"}
		client := &remote.StubClient{
			SignInWithPopupFunc: func(ctx context.Context, provider remote.Provider) (*remote.AuthResult, error) {
				return nil, popupErr
			},
		}
		gateway, _ := newTestGateway(client, nil)

		_, err := gateway.FederatedSignIn(context.Background(), domain.ProviderFacebook)
		assert.Same(t, popupErr, err)
	})

	t.Run("unsupported provider kind", func(t *testing.T) {
		gateway, _ := newTestGateway(&remote.StubClient{}, nil)

		_, err := gateway.FederatedSignIn(context.Background(), domain.ProviderKind("google"))
		require.Error(t, err)
		assert.True(t, domain.IsProviderNotSupported(err))
	})
}

func TestAuthGateway_NativeFederatedSignIn(t *testing.T) {
	t.Run("exchanges native token for a credential sign-in", func(t *testing.T) {
		var gotCredential remote.Credential
		client := &remote.StubClient{
			SignInWithCredentialFunc: func(ctx context.Context, credential remote.Credential) (*remote.AuthResult, error) {
				gotCredential = credential
				return &remote.AuthResult{IDToken: "token-native"}, nil
			},
		}
		exchanger := &mockExchanger{
			ExchangeFunc: func(ctx context.Context, scopes []string) (string, error) {
				assert.Equal(t, domain.FacebookScopes, scopes)
				return "native-access-token", nil
			},
		}
		gateway, _ := newTestGateway(client, exchanger)

		result, err := gateway.NativeFederatedSignIn(context.Background(), domain.ProviderFacebook)
		require.NoError(t, err)
		assert.Equal(t, "token-native", result.IDToken)
		assert.Equal(t, domain.ProviderFacebook, gotCredential.Provider)
		assert.Equal(t, "native-access-token", gotCredential.AccessToken)
	})

	t.Run("user cancellation surfaces as a generic cancellation error", func(t *testing.T) {
		exchanger := &mockExchanger{
			ExchangeFunc: func(ctx context.Context, scopes []string) (string, error) {
				return "", remote.ErrExchangeCancelled
			},
		}
		gateway, _ := newTestGateway(&remote.StubClient{}, exchanger)

		_, err := gateway.NativeFederatedSignIn(context.Background(), domain.ProviderFacebook)
		require.Error(t, err)
		assert.True(t, domain.IsCancelled(err))
	})

	t.Run("no exchanger configured", func(t *testing.T) {
		gateway, _ := newTestGateway(&remote.StubClient{}, nil)

		_, err := gateway.NativeFederatedSignIn(context.Background(), domain.ProviderFacebook)
		require.Error(t, err)
		assert.True(t, domain.IsProviderNotSupported(err))
	})
}

func TestAuthGateway_SignUp(t *testing.T) {
	t.Run("email already in use maps to email field", func(t *testing.T) {
		client := &remote.StubClient{
			CreateAccountWithPasswordFunc: func(ctx context.Context, email, password string) (*remote.AuthResult, error) {
				return nil, &remote.AuthError{Code: remote.CodeEmailTaken, Message: "taken"}
			},
		}
		gateway, _ := newTestGateway(client, nil)

		_, err := gateway.SignUp(context.Background(), Credentials{
			Email:    "jane@example.com",
			Password: "hunter22",
		})

		require.Error(t, err)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "email", ve.Field)
	})

	t.Run("success emits pending then success", func(t *testing.T) {
		client := &remote.StubClient{
			CreateAccountWithPasswordFunc: func(ctx context.Context, email, password string) (*remote.AuthResult, error) {
				return &remote.AuthResult{IDToken: "token-2"}, nil
			},
		}
		gateway, pub := newTestGateway(client, nil)

		result, err := gateway.SignUp(context.Background(), Credentials{
			Email:    "jane@example.com",
			Password: "hunter22",
		})
		require.NoError(t, err)
		assert.Equal(t, "token-2", result.IDToken)

		signUps := pub.byType(domain.EventAuthSignUp)
		require.Len(t, signUps, 2)
		assert.Equal(t, domain.StatusPending, signUps[0].Status)
		assert.Equal(t, domain.StatusSuccess, signUps[1].Status)
	})
}

func TestAuthGateway_ResetPassword(t *testing.T) {
	t.Run("invalid email fails before remote call", func(t *testing.T) {
		remoteCalled := false
		client := &remote.StubClient{
			SendPasswordResetEmailFunc: func(ctx context.Context, email string) error {
				remoteCalled = true
				return nil
			},
		}
		gateway, _ := newTestGateway(client, nil)

		err := gateway.ResetPassword(context.Background(), "not-an-email")

		require.Error(t, err)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "email", ve.Field)
		assert.False(t, remoteCalled)
	})

	t.Run("user not found maps to email field", func(t *testing.T) {
		client := &remote.StubClient{
			SendPasswordResetEmailFunc: func(ctx context.Context, email string) error {
				return &remote.AuthError{Code: remote.CodeUserNotFound, Message: "missing"}
			},
		}
		gateway, _ := newTestGateway(client, nil)

		err := gateway.ResetPassword(context.Background(), "jane@example.com")

		require.Error(t, err)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "email", ve.Field)
	})

	t.Run("success", func(t *testing.T) {
		gateway, pub := newTestGateway(&remote.StubClient{}, nil)

		err := gateway.ResetPassword(context.Background(), "jane@example.com")
		require.NoError(t, err)

		resets := pub.byType(domain.EventAuthResetPassword)
		require.Len(t, resets, 2)
		assert.Equal(t, domain.StatusSuccess, resets[1].Status)
	})
}
