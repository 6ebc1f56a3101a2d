package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/epic-events/epic-crm/internal/app"
	"github.com/epic-events/epic-crm/internal/auth"
	"github.com/epic-events/epic-crm/internal/clients"
	"github.com/epic-events/epic-crm/internal/contracts"
	"github.com/epic-events/epic-crm/internal/events"
	"github.com/epic-events/epic-crm/internal/platform/cache"
	"github.com/epic-events/epic-crm/internal/platform/db"
	"github.com/epic-events/epic-crm/internal/rbac"
	"github.com/epic-events/epic-crm/internal/roles"
	"github.com/epic-events/epic-crm/internal/shared"
	"github.com/epic-events/epic-crm/internal/users"
)

var errSessionsDisabled = errors.New("persisted sessions are disabled, set REDIS_ADDR or use `epiccrm login`")

// runtime holds the resources of one CLI invocation.
type runtime struct {
	cfg      *app.Config
	logger   *slog.Logger
	closeLog func() error

	pool     *pgxpool.Pool
	rbac     *rbac.Service
	auth     *auth.Service
	services Services

	redis    *redis.Client
	sessions *shared.SessionManager
}

func loadRuntime() (*runtime, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := app.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger, closeLog: closeLog}, nil
}

// connect opens the database, checks the schema and loads the permission matrix.
func (rt *runtime) connect(ctx context.Context) error {
	pool, err := db.New(ctx, rt.cfg.PGDSN)
	if err != nil {
		rt.logger.Error("connect postgres", slog.Any("error", err))
		return err
	}
	rt.pool = pool
	if err := db.EnsureSchema(ctx, pool); err != nil {
		rt.logger.Error("schema check", slog.Any("error", err))
		return err
	}

	roleService := roles.NewService(roles.NewRepository(pool))
	userService := users.NewService(users.NewRepository(pool), roleService)
	contractService := contracts.NewService(contracts.NewRepository(pool))

	rt.rbac = rbac.NewService(rbac.NewRepository(pool), rt.logger)
	if err := rt.rbac.Load(ctx); err != nil {
		rt.logger.Error("load permissions", slog.Any("error", err))
		return err
	}
	if len(rt.rbac.Grants()) == 0 {
		rt.logger.Warn("permission table is empty, every command will be denied")
	}

	rt.auth = auth.NewService(auth.NewRepository(pool))
	rt.services = Services{
		Users:     userService,
		Clients:   clients.NewService(clients.NewRepository(pool)),
		Contracts: contractService,
		Events:    events.NewService(events.NewRepository(pool), contractService, userService),
	}
	return nil
}

// connectSessions opens the session store. It fails when sessions are not configured.
func (rt *runtime) connectSessions(ctx context.Context) error {
	if !rt.cfg.SessionsEnabled() {
		return errSessionsDisabled
	}
	client, err := cache.New(ctx, rt.cfg.RedisAddr)
	if err != nil {
		rt.logger.Warn("redis unavailable", slog.Any("error", err))
		return err
	}
	rt.redis = client
	rt.sessions = shared.NewSessionManager(client, rt.cfg.SessionTTL)
	return nil
}

func (rt *runtime) guard() rbac.Guard {
	return rbac.Guard{Authorizer: rt.rbac, Logger: rt.logger}
}

// endSession removes the stored session and its file.
func (rt *runtime) endSession(ctx context.Context, id string) error {
	if rt.sessions != nil {
		if err := rt.sessions.Destroy(ctx, id); err != nil {
			return err
		}
	}
	return removeSessionFile(rt.cfg.SessionFile)
}

func (rt *runtime) Close() {
	if rt.pool != nil {
		rt.pool.Close()
	}
	if rt.redis != nil {
		if err := rt.redis.Close(); err != nil {
			rt.logger.Warn("redis close", slog.Any("error", err))
		}
	}
	if rt.closeLog != nil {
		_ = rt.closeLog()
	}
}
