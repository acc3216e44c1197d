package main

import (
	"context"
	"errors"
	"flag"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/jackc/pgx/v5/pgxpool"
	rdb "github.com/redis/go-redis/v9"

	"github.com/ranjanashish/leh-registry/internal/bootstrap"
	"github.com/ranjanashish/leh-registry/internal/config"
	"github.com/ranjanashish/leh-registry/internal/http"
	"github.com/ranjanashish/leh-registry/internal/observability/logger"
	"github.com/ranjanashish/leh-registry/internal/rate"
	"github.com/ranjanashish/leh-registry/internal/service"
	"github.com/ranjanashish/leh-registry/internal/store"
	pgdriver "github.com/ranjanashish/leh-registry/internal/store/pg"
)

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func main() {
	var (
		flagConfigPath = flag.String("config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o configs/config.yaml)")
		flagEnvFile    = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
	)
	flag.Parse()

	if *flagEnvFile != "" && fileExists(*flagEnvFile) {
		if err := godotenv.Load(*flagEnvFile); err == nil {
			log.Printf("dotenv: cargado %s", *flagEnvFile)
		}
	}

	cfgPath := *flagConfigPath
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "leh-registry"})
	defer func() { _ = logger.Sync() }()
	lg := logger.Named("server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store según driver configurado
	repo, err := store.Open(ctx, store.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
		Postgres: pgdriver.Config{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		},
		Mongo: store.MongoConfig{
			URI:      cfg.Storage.Mongo.URI,
			Database: cfg.Storage.Mongo.Database,
		},
	})
	if err != nil {
		lg.Fatal("store open failed", logger.Err(err))
	}
	defer func() { _ = repo.Close(context.Background()) }()

	// Bootstrap del admin: si falla, el servicio arranca igual y se
	// reintenta en el próximo arranque.
	guarantor := bootstrap.New(repo, bootstrap.AdminConfig{
		Name:       cfg.Bootstrap.Admin.Name,
		Email:      cfg.Bootstrap.Admin.Email,
		Phone:      cfg.Bootstrap.Admin.Phone,
		Department: cfg.Bootstrap.Admin.Department,
		Password:   cfg.Bootstrap.Admin.Password,
	})
	if err := guarantor.Ensure(ctx); err != nil {
		lg.Warn("admin bootstrap failed", logger.Err(err))
	}

	// Rate limiting: Redis si está configurado, memoria si no.
	var limiters *rate.Pool
	if cfg.Rate.Enabled {
		limits := rate.Limits{
			GlobalMax:    cfg.Rate.MaxRequests,
			GlobalWindow: config.Duration(cfg.Rate.Window),
			LoginMax:     cfg.Rate.Login.Limit,
			LoginWindow:  config.Duration(cfg.Rate.Login.Window),
		}
		if cfg.Cache.Kind == "redis" {
			rc := rdb.NewClient(&rdb.Options{
				Addr: cfg.Cache.Redis.Addr,
				DB:   cfg.Cache.Redis.DB,
			})
			limiters = rate.NewRedisPool(rc, cfg.Cache.Redis.Prefix+"rl:", limits)
		} else {
			limiters = rate.NewMemoryPool(limits)
		}
	}

	// Métricas: si el driver es postgres exponemos también stats del pool.
	var poolFunc func() *pgxpool.Pool
	if pgRepo, ok := repo.(*pgdriver.Store); ok {
		poolFunc = pgRepo.Pool
	}
	metricsHandler, err := http.RegisterMetrics(http.MetricsConfig{DBPool: poolFunc})
	if err != nil {
		lg.Fatal("metrics registration failed", logger.Err(err))
	}

	handler := http.NewRouter(http.RouterConfig{
		Users:              http.NewUsersController(service.NewUsers(repo)),
		Records:            http.NewRecordsController(service.NewRecords(repo)),
		Store:              repo,
		Limiters:           limiters,
		Metrics:            metricsHandler,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := http.NewServer(cfg.Server.Addr, handler,
		config.Duration(cfg.Server.ReadTimeout),
		config.Duration(cfg.Server.WriteTimeout),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("driver", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Duration(cfg.Server.ShutdownTimeout))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Fatal("server exited", logger.Err(err))
	}
	lg.Info("shutdown complete")
}
