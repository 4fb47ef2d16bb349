package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"

	_ "storefront/docs"
	"storefront/pkg/catalog"
	"storefront/pkg/config"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/otel"
	"storefront/pkg/persist"
	"storefront/pkg/storage"
	"storefront/pkg/storage/memory"
	pg "storefront/pkg/storage/postgres"
	"storefront/pkg/storage/redisstore"
	"storefront/pkg/storefront"
)

var (
	store  *storefront.Store
	log    *logger.Logger
	tracer trace.Tracer
)

// @title Storefront API
// @version 1.0
// @description Catalog, cart, wallet and checkout for a single shopper session
// @host localhost:8080
// @BasePath /
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run wires the service and serves until interrupted. Errors are logged
// before they are returned so deferred flushes still run.
func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.New(os.Stderr, logger.LevelError, "storefront", nil).Error(context.Background(), "load config", "error", err)
		return err
	}

	log = logger.New(logOutput(cfg), logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, otel.GetTraceID)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: cfg.App.Name, Host: cfg.Tracing.Host, Probability: cfg.Tracing.Probability})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		return err
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer(cfg.App.Name)

	kv, closeKV, err := openStorage(ctx, cfg)
	if err != nil {
		log.Error(ctx, "open storage", "driver", cfg.Storage.Driver, "error", err)
		return err
	}
	defer closeKV()

	sfCfg, err := cfg.Storefront()
	if err != nil {
		log.Error(ctx, "store config", "error", err)
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	cat := storefront.LoadCatalog(ctx, catalog.NewHTTPFetcher(cfg.Catalog.URL, cfg.Catalog.Timeout), log, m)
	store, err = storefront.New(ctx, sfCfg, cat, persist.New(kv, log), log, m)
	if err != nil {
		log.Error(ctx, "init storefront", "error", err)
		return err
	}

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      newRouter(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn(sctx, "shutdown", "error", err)
		}
	}()

	log.Info(ctx, "listening", "addr", cfg.App.HTTPAddr, "storage", cfg.Storage.Driver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "server closed", "error", err)
		return err
	}
	return nil
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(traceMiddleware)

	r.HandleFunc("/products", listProductsHandler).Methods(http.MethodGet)

	r.HandleFunc("/cart", getCartHandler).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", addItemHandler).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id:[0-9]+}", changeQtyHandler).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id:[0-9]+}", removeItemHandler).Methods(http.MethodDelete)

	r.HandleFunc("/coupon", applyCouponHandler).Methods(http.MethodPost)
	r.HandleFunc("/coupon", clearCouponHandler).Methods(http.MethodDelete)

	r.HandleFunc("/balance/topup", topUpHandler).Methods(http.MethodPost)
	r.HandleFunc("/balance/credit", creditHandler).Methods(http.MethodPost)

	r.HandleFunc("/checkout", checkoutHandler).Methods(http.MethodPost)
	r.HandleFunc("/newsletter", subscribeHandler).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// logOutput tees records into a rotating file when app.log_file is set.
func logOutput(cfg config.Config) io.Writer {
	if cfg.App.LogFile == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.App.LogFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
}

// openStorage connects the configured backend and namespaces it with the
// key prefix.
func openStorage(ctx context.Context, cfg config.Config) (storage.KV, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		return storage.WithPrefix(redisstore.New(rdb), cfg.Storage.KeyPrefix), func() { rdb.Close() }, nil
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		s := pg.New(db)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return storage.WithPrefix(s, cfg.Storage.KeyPrefix), func() { db.Close() }, nil
	default:
		return storage.WithPrefix(memory.New(), cfg.Storage.KeyPrefix), func() {}, nil
	}
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
