// Command este runs the auth and presence orchestration subsystem against an
// in-memory store and a scripted remote-auth stub. It exists to exercise the
// full wiring end to end: sign-in, identity changes, presence publication and
// connectivity events, until interrupted.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jvorcak/este/internal/config"
	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/events"
	"github.com/jvorcak/este/internal/remote"
	"github.com/jvorcak/este/internal/service"
	"github.com/jvorcak/este/internal/store/memory"
	"github.com/jvorcak/este/internal/utils"
	"github.com/jvorcak/este/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting este", zap.String("environment", cfg.Environment))

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Initialize collaborators: in-memory store and scripted auth stub
	st := memory.NewStore()
	client := newStubAuthClient()

	// Initialize event bus
	bus := events.NewBus(cfg.EventBuffer, logger)

	paths := service.Paths{
		Profiles:     cfg.ProfilesPath,
		Emails:       cfg.EmailsPath,
		Presence:     cfg.PresencePath,
		Connectivity: cfg.ConnectivityPath,
	}

	// Initialize services
	catalog := remote.DefaultCatalog()
	gateway := service.NewAuthGateway(
		client,
		nil,
		catalog,
		service.NewErrorTranslator(catalog),
		utils.NewCredentialValidator(),
		bus,
		logger,
	)
	persistence := service.NewUserPersistence(st, paths, logger)

	// Initialize persist worker pool
	pool := worker.NewPersistWorkerPool(cfg.PersistWorkers, cfg.PersistQueueSize, persistence, bus, logger)
	defer pool.Stop()

	presence := service.NewPresenceMonitor(st, paths, logger)
	reconciler := service.NewSessionReconciler(client, st, presence, pool, bus, paths, logger)

	eventCh, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	// Start the reconciler
	stop, err := reconciler.Start(ctx)
	if err != nil {
		logger.Fatal("failed to start session reconciler", zap.Error(err))
	}
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case event, ok := <-eventCh:
				if !ok {
					return nil
				}
				logger.Info("domain event",
					zap.String("type", string(event.Type)),
					zap.String("status", string(event.Status)),
					zap.Error(event.Err))
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		return runScenario(ctx, logger, client, st, gateway)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("run failed", zap.Error(err))
	}

	logger.Info("shutdown signal received, gracefully shutting down")
}

// newStubAuthClient returns a stub that signs any password attempt in as a
// fixed demo user.
func newStubAuthClient() *remote.StubClient {
	return &remote.StubClient{
		SignInWithPasswordFunc: func(ctx context.Context, email, password string) (*remote.AuthResult, error) {
			token, err := remote.IdentityToken("demo-user", email, "Demo User")
			if err != nil {
				return nil, err
			}
			return &remote.AuthResult{IDToken: token}, nil
		},
	}
}

// runScenario drives a short sign-in / connectivity / sign-out sequence
// through the subsystem.
func runScenario(ctx context.Context, logger *zap.Logger, client *remote.StubClient, st *memory.Store, gateway *service.AuthGateway) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"sign in", func() error {
			result, err := gateway.SignIn(ctx, domain.ProviderPassword, service.Credentials{
				Email:    "demo@example.com",
				Password: "demo-password",
			})
			if err != nil {
				return err
			}
			client.EmitIdentityChanged(result.IDToken)
			return nil
		}},
		{"connect", func() error { st.SetConnected(true); return nil }},
		{"drop connection", func() error { st.SetConnected(false); return nil }},
		{"reconnect", func() error { st.SetConnected(true); return nil }},
		{"sign out", func() error { client.EmitIdentityChanged(""); return nil }},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(500 * time.Millisecond):
		}
		logger.Info("scenario step", zap.String("step", step.name))
		if err := step.run(); err != nil {
			return err
		}
	}

	<-ctx.Done()
	return nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = level
	return zapCfg.Build()
}
