package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suka712/anvago-travel-planning/internal/auth"
	"github.com/suka712/anvago-travel-planning/internal/config"
	"github.com/suka712/anvago-travel-planning/internal/db"
	"github.com/suka712/anvago-travel-planning/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	migrate         func(context.Context, string) error
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, *pgxpool.Pool, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		migrate:         db.Migrate,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		notify:          signal.Notify,
		run:             Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	if err := deps.migrate(context.Background(), cfg.PostgresURL); err != nil {
		log.Printf("migrations failed: %v", err)
	}

	pg, err := deps.connectPostgres(cfg)
	if err != nil {
		log.Printf("postgres connection failed: %v", err)
	}

	rdb := deps.connectRedis(cfg)

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, pg, rdb, signals, nil); err != nil {
		log.Printf("server exited with error: %v", err)
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server plus the hourly maintenance jobs and
// waits for termination signals.
func Run(ctx context.Context, cfg config.Config, pg *pgxpool.Pool, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, pg, rdb)

	if pg != nil {
		bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		promoted, err := srv.Auth.BootstrapAdmin(bootCtx, cfg.AdminEmail)
		cancel()
		if err != nil {
			log.Printf("admin bootstrap failed: %v", err)
		} else if promoted {
			log.Printf("promoted %s to admin", cfg.AdminEmail)
		}
	}

	jobs := startJobs(srv.Auth, pg != nil)
	defer jobs.Stop()

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if pg != nil {
		pg.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}

// startJobs schedules the hourly token purge and premium-grant expiry.
// Without a database the scheduler still starts, with nothing on it.
func startJobs(authSvc *auth.Service, haveDB bool) *cron.Cron {
	c := cron.New()
	if haveDB {
		_, _ = c.AddFunc("@hourly", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if n, err := authSvc.PurgeExpiredTokens(ctx); err != nil {
				log.Printf("token purge failed: %v", err)
			} else if n > 0 {
				log.Printf("purged %d expired refresh tokens", n)
			}
		})
		_, _ = c.AddFunc("@hourly", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if n, err := authSvc.ExpirePremiumGrants(ctx); err != nil {
				log.Printf("premium expiry failed: %v", err)
			} else if n > 0 {
				log.Printf("expired %d premium grants", n)
			}
		})
	}
	c.Start()
	return c
}
