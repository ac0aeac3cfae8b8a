package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/ebanking-console/internal/api/handler"
	"github.com/99minutos/ebanking-console/internal/api/metrics"
	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/service"
	"github.com/99minutos/ebanking-console/internal/infrastructure/config"
	"github.com/99minutos/ebanking-console/internal/infrastructure/db/file"
	mongodb "github.com/99minutos/ebanking-console/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/ebanking-console/internal/infrastructure/db/redis"
	"github.com/99minutos/ebanking-console/internal/infrastructure/gateway"
)

// Runtime is the wired console: credential store, backend client, session
// store and gateways.
type Runtime struct {
	Config   *config.Config
	Log      zerolog.Logger
	Backend  *gateway.Client
	Sessions *service.SessionStore
	Gateways controller.Gateways
	// Health lists the dependencies checked by the readiness check.
	Health map[string]handler.Pinger

	closers []func(context.Context) error
}

// Open wires the runtime described by cfg and restores the persisted session.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Log: log, Health: map[string]handler.Pinger{}}

	store, err := rt.openStore(ctx)
	if err != nil {
		return nil, err
	}

	var sessions *service.SessionStore
	backend, err := gateway.NewClient(gateway.Options{
		BaseURL:       cfg.API.BaseURL,
		VersionPrefix: cfg.API.VersionPrefix,
		Timeout:       cfg.API.Timeout,
		Token:         func() string { return sessions.Token() },
		Transport:     metrics.InstrumentRoundTripper(nil),
		OnFailure:     metrics.ObserveFailure,
	}, log)
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}
	auth := gateway.NewAuth(backend)
	sessions = service.NewSessionStore(store, auth, log)

	rt.Backend = backend
	rt.Sessions = sessions
	rt.Health["backend"] = backend
	rt.Gateways = controller.Gateways{
		Admin:     gateway.NewAdmin(backend),
		Settings:  gateway.NewSettings(backend),
		Stats:     gateway.NewStats(backend),
		Agent:     gateway.NewAgent(backend),
		Client:    gateway.NewClientAPI(backend),
		Passwords: service.NewPasswordService(sessions, auth, log),
	}

	if err := sessions.Restore(ctx); err != nil {
		rt.Close(ctx)
		return nil, err
	}
	metrics.SessionTransitionsTotal.WithLabelValues("restore").Inc()
	return rt, nil
}

func (rt *Runtime) openStore(ctx context.Context) (ports.CredentialStore, error) {
	cfg := rt.Config
	switch cfg.Store.Driver {
	case config.StoreRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func(context.Context) error { return client.Close() })
		store := redisdb.NewCredentialStore(client, cfg.Store.KeyPrefix, cfg.Store.TTL)
		rt.Health["redis"] = store
		return store, nil

	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, client.Disconnect)
		store, err := mongodb.NewCredentialStore(ctx, db, cfg.Mongo.Collection, cfg.Store.TTL)
		if err != nil {
			rt.Close(ctx)
			return nil, err
		}
		rt.Health["mongo"] = store
		return store, nil

	case config.StoreFile:
		rt.Log.Debug().Str("path", cfg.Store.Path).Bool("sealed", cfg.Store.SealKey != "").Msg("using file credential store")
		store, err := file.New(cfg.Store.Path, cfg.Store.SealKey)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported store %q", cfg.Store.Driver)
	}
}

// Close releases the store connections.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

// Timing converts the UI configuration into screen timing policies.
func Timing(ui config.UIConfig) controller.Timing {
	return controller.Timing{
		ShortToast:       ui.ShortToast,
		LongToast:        ui.LongToast,
		BannerToast:      ui.BannerToast,
		NotificationPoll: ui.NotificationPoll,
		ChartRetry:       controller.Retry{Attempts: ui.ChartRetryAttempts, Step: ui.ChartRetryStep},
		BellSize:         ui.NotificationBellSize,
		FallbackFee:      ui.FallbackFeePercent,
	}
}
