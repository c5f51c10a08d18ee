package app

import (
	"context"
	"net/http"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/catalog"
	"github.com/shoplite/storefront/internal/domain/order"
	"github.com/shoplite/storefront/internal/domain/promo"
	"github.com/shoplite/storefront/internal/domain/wishlist"
	"github.com/shoplite/storefront/internal/handler"
	"github.com/shoplite/storefront/internal/pricing"
	"github.com/shoplite/storefront/internal/storage"
	"github.com/shoplite/storefront/internal/storage/kvstore"
	"github.com/shoplite/storefront/internal/storage/postgres"
	"github.com/shoplite/storefront/pkg/health"
	"github.com/shoplite/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles
// graceful shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr), zap.String("store", cfg.Store.Backend))
	ctx = zctx.Base(ctx, lg)

	// Collection store.
	healthSvc := health.New()
	var store storage.Store
	switch cfg.Store.Backend {
	case "file":
		s, err := kvstore.Open(cfg.Store.DataDir)
		if err != nil {
			return errors.Wrap(err, "open file store")
		}
		store = s
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}
		store = postgres.NewStore(pool)
		healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
	default:
		return errors.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	// Catalog and engines.
	cat, err := catalog.Load()
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	cartEngine, err := cart.NewEngine(ctx, cat, store)
	if err != nil {
		return errors.Wrap(err, "init cart engine")
	}
	wishlistEngine, err := wishlist.NewEngine(ctx, store)
	if err != nil {
		return errors.Wrap(err, "init wish list engine")
	}
	rules, err := cfg.PricingRules()
	if err != nil {
		return err
	}
	calc := pricing.NewCalculator(rules)
	orderEngine, err := order.NewEngine(ctx, cartEngine, calc, store)
	if err != nil {
		return errors.Wrap(err, "init order engine")
	}

	// Promo validation.
	var filter *bloom.BloomFilter
	if cfg.Promo.FilterPath != "" {
		filter, err = promo.LoadFilter(cfg.Promo.FilterPath)
		if err != nil {
			return errors.Wrap(err, "load promo filter")
		}
		lg.Info("Loaded promo filter", zap.String("path", cfg.Promo.FilterPath))
	}
	validator := promo.NewCodeValidator(cfg.Promo.Code, filter)
	session := &promo.Session{}

	// HTTP surface.
	h := handler.New(cat, cartEngine, wishlistEngine, orderEngine, calc, validator, session)
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", h.Routes())

	instrumented := otelhttp.NewHandler(mux, "storefront",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(instrumented,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	healthSvc.SetReady(true)

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
