package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/auth"
	"github.com/frahmantamala/hopecare/internal/auth/sessionstore"
	"github.com/frahmantamala/hopecare/internal/beneficiary"
	"github.com/frahmantamala/hopecare/internal/broker"
	"github.com/frahmantamala/hopecare/internal/core/events"
	"github.com/frahmantamala/hopecare/internal/delivery"
	"github.com/frahmantamala/hopecare/internal/donation"
	"github.com/frahmantamala/hopecare/internal/donor"
	"github.com/frahmantamala/hopecare/internal/inventory"
	"github.com/frahmantamala/hopecare/internal/program"
	"github.com/frahmantamala/hopecare/internal/report"
	"github.com/frahmantamala/hopecare/internal/transport"
	"github.com/frahmantamala/hopecare/internal/transport/middleware"
	"github.com/frahmantamala/hopecare/internal/transport/rest"
	"github.com/frahmantamala/hopecare/internal/transport/swagger"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/logger"
	"github.com/frahmantamala/hopecare/pkg/metrics"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config       *internal.Config
	DB           *sqlx.DB
	Router       *chi.Mux
	Logger       *slog.Logger
	EventBus     *events.EventBus
	Auth         *auth.Service
	LoginLimiter *middleware.IPRateLimiter
	Broker       *broker.Connection
	Redis        *redis.Client
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps.Auth.StartJanitor(ctx, deps.Config.Security.JanitorInterval)
	if deps.LoginLimiter != nil {
		go sweepLimiter(ctx, deps.LoginLimiter)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		deps.Logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	// handlers may still be forwarding events to the broker
	deps.EventBus.Wait()
	deps.close()
	deps.Logger.Info("server stopped")
}

func (d *Dependencies) close() {
	if d.Broker != nil {
		if err := d.Broker.Close(); err != nil {
			d.Logger.Error("broker close error", "error", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("redis close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

func sweepLimiter(ctx context.Context, limiter *middleware.IPRateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep()
		}
	}
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	// fail fast on a broken API document
	if _, err := swagger.LoadSpec(context.Background(), cfg.Server.OpenAPIPath); err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gdb, err := initGorm(db)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Config:   cfg,
		DB:       db,
		Router:   chi.NewRouter(),
		Logger:   lg,
		EventBus: events.NewEventBus(lg),
	}
	health := rest.NewHealthHandler(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ledgerMetrics := metrics.NewLedger(reg)

	var sessions auth.SessionStore = sessionstore.NewMemory()
	if cfg.Security.SessionStore == "redis" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := deps.Redis.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		sessions = sessionstore.NewRedis(deps.Redis)
		health.AddCheck("redis", func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		})
	}

	if cfg.Broker.Enabled {
		conn, err := broker.Dial(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			return nil, err
		}
		deps.Broker = conn
		broker.NewPublisher(conn.Channel(), cfg.Broker.Queue, lg).Bridge(deps.EventBus)
	}

	svc := newLedgerServices(cfg, gdb, db, deps.EventBus, ledgerMetrics, lg)
	deps.Auth = auth.NewService(svc.Users, sessions, cfg.Security.SessionTTL, lg).WithMetrics(ledgerMetrics)

	if cfg.RateLimit.Enabled {
		deps.LoginLimiter = middleware.NewIPRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
		if err := deps.LoginLimiter.TrustProxies(splitOrigins(cfg.RateLimit.TrustedProxies)); err != nil {
			return nil, err
		}
	}

	base := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Health: health,
		Auth: auth.NewHandler(base, deps.Auth, auth.CookieConfig{
			Name:   cfg.Security.SessionCookie,
			Secure: cfg.Security.SecureCookie,
		}),
		Users:         user.NewHandler(base, svc.Users),
		Donors:        donor.NewHandler(base, svc.Donors),
		Beneficiaries: beneficiary.NewHandler(base, svc.Beneficiaries),
		Programs:      program.NewHandler(base, svc.Programs),
		Donations:     donation.NewHandler(base, svc.Donations),
		Inventory:     inventory.NewHandler(base, svc.Inventory),
		Deliveries:    delivery.NewHandler(base, svc.Deliveries),
		Reports:       report.NewHandler(base, svc.Reports),
	}

	opts := rest.Options{
		AllowedOrigins: splitOrigins(cfg.Server.AllowedOrigins),
		RequestTimeout: cfg.Server.RequestTimeout,
		LoginLimiter:   deps.LoginLimiter,
		OpenAPIPath:    cfg.Server.OpenAPIPath,
	}
	if cfg.Observability.Metrics.Enabled {
		opts.HTTPMetrics = metrics.NewHTTP(reg)
		opts.Gatherer = reg
		opts.MetricsPath = cfg.Observability.Metrics.Path
	}
	rest.RegisterAllRoutes(deps.Router, handlers, opts)

	return deps, nil
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
