// Package app wires repositories, stores and services from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/cart"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/kv"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/review"
)

type App struct {
	Log      *zap.Logger
	Products product.Repository
	Orders   order.Repository
	Reviews  review.Repository
	// Store persists carts, wishlists, bookings and the catalog version; Cache
	// holds expiring query results.
	Store    kv.Store
	Cache    kv.Store
	Bookings *booking.Service
	Cart     *cart.Service
	Wishlist *cart.Wishlist
	Checkout *cart.Checkout
	// AdminHash is the bcrypt hash admin routes check against.
	AdminHash string

	closers []func()
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{Log: log}
	if err := a.openRepos(ctx, cfg); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openStores(ctx, cfg); err != nil {
		a.Close()
		return nil, err
	}

	a.Bookings = booking.NewService(a.Store)
	a.Cart = cart.NewService(a.Store, a.Products)
	a.Wishlist = cart.NewWishlist(a.Store)
	a.Checkout = cart.NewCheckout(a.Cart, a.Orders, log)

	a.AdminHash = cfg.AdminPassHash
	if a.AdminHash == "" {
		pw := cfg.AdminPass
		if pw == "" {
			pw = "admin"
			log.Warn("ADMIN_PASSWORD_HASH not set, using the default admin password")
		}
		h, err := httpx.HashPassword(pw)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.AdminHash = h
	}
	return a, nil
}

func (a *App) openRepos(ctx context.Context, cfg config.Config) error {
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("pgx pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("pgx ping: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		a.Products = product.NewPGRepo(pool)
		a.Orders = order.NewPGRepo(pool)
		a.Reviews = review.NewPGRepo(pool)
		a.Log.Info("using postgres repositories")
		return nil
	}

	seed := product.DefaultCatalog()
	if cfg.CatalogSeed != "" {
		ps, err := product.LoadSeedFile(cfg.CatalogSeed)
		if err != nil {
			return err
		}
		seed = ps
	}
	a.Products = product.NewMemRepo(seed...)
	if cfg.SeedDemoData {
		a.Orders = order.NewMemRepo(DemoOrders(seed)...)
		a.Reviews = review.NewMemRepo(DemoReviews(seed)...)
	} else {
		a.Orders = order.NewMemRepo()
		a.Reviews = review.NewMemRepo()
	}
	a.Log.Info("using in-memory repositories", zap.Int("products", len(seed)))
	return nil
}

func (a *App) openStores(ctx context.Context, cfg config.Config) error {
	switch cfg.KVBackend {
	case "redis":
		r, err := kv.NewRedis(ctx, cfg.RedisAddr, "storefront:", 0)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { _ = r.Close() })
		a.Store = r
		a.Cache = r.WithTTL(cfg.CacheTTL)
	case "bolt":
		b, err := kv.OpenBolt(cfg.BoltPath)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { _ = b.Close() })
		a.Store = b
	case "memory", "":
		a.Store = kv.NewMemory()
	default:
		return fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}
	if a.Cache == nil {
		size := cfg.CacheSize
		if size <= 0 {
			size = 1024
		}
		c, err := kv.NewLRU(size, cfg.CacheTTL)
		if err != nil {
			return err
		}
		a.Cache = c
	}
	a.Log.Info("kv store ready", zap.String("backend", cfg.KVBackend))
	return nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
