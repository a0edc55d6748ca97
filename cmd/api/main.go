package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/geocoder89/portfolio-api/internal/auth"
	"github.com/geocoder89/portfolio-api/internal/cache"
	"github.com/geocoder89/portfolio-api/internal/config"
	"github.com/geocoder89/portfolio-api/internal/credentials"
	"github.com/geocoder89/portfolio-api/internal/db"
	httpx "github.com/geocoder89/portfolio-api/internal/http"
	"github.com/geocoder89/portfolio-api/internal/observability"
	"github.com/geocoder89/portfolio-api/internal/repo/memory"
	"github.com/geocoder89/portfolio-api/internal/repo/mongodb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg, err := config.Load()

	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: cfg.ServiceName,
		Env:         cfg.Env,
		Endpoint:    cfg.OTelEndpoint,
	})

	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	deps, closeStores, err := buildDeps(ctx, log, cfg, prom)

	if err != nil {
		log.Error("store setup failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}

	deps.Gatherer = reg

	var shuttingDown atomic.Bool
	deps.ShuttingDown = shuttingDown.Load

	// set up routers with the log
	router := httpx.NewRouter(log, deps, cfg)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	shuttingDown.Store(true)
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(context.Background(), 10*time.Second)

		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		// stores go after the server so in-flight requests can finish
		closeStores(ctx)

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// buildDeps opens the configured store, wraps the collections with the list cache when
// enabled and returns a func that releases every connection it opened.
func buildDeps(ctx context.Context, log *slog.Logger, cfg config.Config, prom *observability.Prom) (httpx.Deps, func(context.Context), error) {
	var (
		deps    httpx.Deps
		closers []func(context.Context)
		users   credentials.UserStore
	)

	closeAll := func(ctx context.Context) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i](ctx)
		}
	}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		skills := memory.NewDocumentsRepo()

		users = memory.NewUsersRepo()
		deps.Skills = skills
		deps.Projects = memory.NewDocumentsRepo()
		deps.Ping = skills.Ping

		log.Warn("using in-memory store, data is lost on restart")

	default:
		client, err := mongodb.Connect(cfg.MongoURI)

		if err != nil {
			return httpx.Deps{}, nil, fmt.Errorf("connect mongodb: %w", err)
		}

		closers = append(closers, func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Error("mongodb disconnect failed", "err", err)
			}
		})

		database := client.Database(cfg.MongoDatabase)
		usersRepo := mongodb.NewUsersRepo(database, prom)

		if cfg.MongoEnsureIndexes {
			ictx, cancel := config.WithTimeout(ctx, 10*time.Second)
			err := usersRepo.EnsureIndexes(ictx)
			cancel()

			if err != nil {
				closeAll(ctx)
				return httpx.Deps{}, nil, fmt.Errorf("ensure user indexes: %w", err)
			}
		}

		users = usersRepo
		deps.Skills = mongodb.NewDocumentsRepo(database, mongodb.SkillsCollection, prom)
		deps.Projects = mongodb.NewDocumentsRepo(database, mongodb.ProjectsCollection, prom)
		deps.Ping = mongodb.Pinger(client)

		log.Info("Connected to MongoDB", "database", cfg.MongoDatabase)
	}

	if cfg.CacheTTL > 0 {
		var store cache.Store

		if cfg.RedisAddr != "" {
			rc := cache.NewRedis(cache.RedisConfig{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			}, cfg.CacheTTL)

			pctx, cancel := config.WithTimeout(ctx, 2*time.Second)
			if err := rc.Ping(pctx); err != nil {
				// the cache degrades to misses, the API keeps working
				log.Warn("redis unreachable at startup", "addr", cfg.RedisAddr, "err", err)
			}
			cancel()

			closers = append(closers, func(context.Context) {
				if err := rc.Close(); err != nil {
					log.Error("redis close failed", "err", err)
				}
			})
			store = rc
		} else {
			store = cache.NewMemory(cfg.CacheTTL)
		}

		deps.Skills = cache.NewDocuments(deps.Skills, store, mongodb.SkillsCollection, prom)
		deps.Projects = cache.NewDocuments(deps.Projects, store, mongodb.ProjectsCollection, prom)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	svc := credentials.NewService(users, tokens)

	sctx, cancel := config.WithTimeout(ctx, 10*time.Second)
	seeded, err := db.EnsureAdminUser(sctx, svc, cfg)
	cancel()

	if err != nil {
		closeAll(ctx)
		return httpx.Deps{}, nil, fmt.Errorf("seed admin user: %w", err)
	}

	if seeded {
		log.Info("admin user created", "email", cfg.AdminEmail)
	}

	deps.Auth = svc
	deps.Prom = prom

	return deps, closeAll, nil
}
