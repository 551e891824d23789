// main.go

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ecommercepro-backend/internal/api"
	"ecommercepro-backend/internal/config"
	"ecommercepro-backend/internal/logging"
	"ecommercepro-backend/internal/shop"
	"ecommercepro-backend/internal/store/memstore"
	"ecommercepro-backend/internal/store/mongostore"
	"ecommercepro-backend/internal/tracing"
)

// stores is what a storage backend hands to the services.
type stores struct {
	products shop.ProductStore
	carts    shop.CartStore
	orders   shop.OrderStore
	close    func(context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if cfg.Tracing {
		shutdown, err := tracing.Init(tracing.Output)
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.close(context.Background()) }()

	svc := api.Services{
		Catalog: shop.NewCatalog(st.products),
		Carts:   shop.NewCarts(log, st.carts, st.products),
		Admin:   shop.NewAdmin(log, st.products, st.orders),
		Seeder:  shop.NewSeeder(log, st.products, st.orders),
	}

	if cfg.SeedCatalog {
		if _, err := svc.Seeder.SeedCatalog(ctx); err != nil {
			return err
		}
	}

	opts := api.Options{CORSOrigins: cfg.CORSOrigins, RequestTimeout: cfg.RequestTimeout}
	if cfg.AdminAuth() {
		opts.Auth = api.NewAdminAuth(cfg.AdminJWTSecret, cfg.AdminEmail, cfg.AdminPasswordHash)
	}
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(log, svc, opts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           tracing.Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "store", cfg.Store, "admin_auth", cfg.AdminAuth())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store; data is lost on exit")
		m := memstore.New()
		return stores{
			products: m.Products(),
			carts:    m.Carts(),
			orders:   m.Orders(),
			close:    func(context.Context) error { return nil },
		}, nil
	}

	log.Info("connecting to mongo", "db", cfg.DBName)
	m, err := mongostore.Connect(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		return stores{}, err
	}
	if err := m.EnsureIndexes(ctx); err != nil {
		_ = m.Close(context.Background())
		return stores{}, err
	}
	return stores{
		products: m.Products(),
		carts:    m.Carts(),
		orders:   m.Orders(),
		close:    m.Close,
	}, nil
}
