// @title           Storefront Catalog API
// @version         1.0
// @description     Products, cart, checkout, grinding bookings and reviews.
// @BasePath        /
// @securityDefinitions.basic BasicAuth
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/MikeMC777/storefront/docs"
	"github.com/MikeMC777/storefront/internal/app"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/grpcx"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/logging"
)

const serviceName = "catalog"

func registerRoutes(r *gin.Engine, a *app.App, adminUser string, cache *queryCache) {
	admin := httpx.AdminAuth(adminUser, a.AdminHash)

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/products", listProductsHandler(a.Products, cache))
	r.GET("/products/search", searchHandler(a.Products, cache))
	r.GET("/products/filters", priceBandsHandler())
	r.GET("/products/:id", getProductHandler(a.Products))
	r.POST("/products", admin, createProductHandler(a.Products, cache))
	r.POST("/products/import", admin, importProductsHandler(a.Products, cache))
	r.PUT("/products/:id", admin, updateProductHandler(a.Products, cache))
	r.DELETE("/products/:id", admin, deleteProductHandler(a.Products, cache))

	r.GET("/cart/:user", getCartHandler(a.Cart))
	r.POST("/cart/:user", addToCartHandler(a.Cart))
	r.DELETE("/cart/:user", clearCartHandler(a.Cart))
	r.PUT("/cart/:user/:productId", updateCartHandler(a.Cart))
	r.DELETE("/cart/:user/:productId", removeFromCartHandler(a.Cart))

	r.GET("/wishlist/:user", wishlistHandler(a.Wishlist))
	r.POST("/wishlist/:user/:productId", addToWishlistHandler(a.Wishlist, a.Products))
	r.DELETE("/wishlist/:user/:productId", removeFromWishlistHandler(a.Wishlist))

	r.POST("/checkout/:user", checkoutHandler(a.Checkout, cache))
	r.GET("/orders", admin, listOrdersHandler(a.Orders))
	r.GET("/orders/:id", admin, getOrderHandler(a.Orders))
	r.GET("/orders/:id/invoice", orderInvoiceHandler(a.Orders))
	r.PUT("/orders/:id/status", admin, updateOrderStatusHandler(a.Checkout, cache))

	r.GET("/bookings/slots", bookingSlotsHandler(a.Bookings))
	r.POST("/bookings", createBookingHandler(a.Bookings))
	r.GET("/bookings", admin, listBookingsHandler(a.Bookings))
	r.PUT("/bookings/:id/status", admin, updateBookingStatusHandler(a.Bookings))

	r.GET("/reviews", listReviewsHandler(a.Reviews))
	r.POST("/reviews", createReviewHandler(a.Reviews, a.Products))
}

func main() {
	cfg := config.Load()
	log := logging.New(logging.Options{Env: cfg.Env, Level: cfg.LogLevel, File: cfg.LogFile}).Named(serviceName)
	defer func() { _ = log.Sync() }()
	cfg.Log(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("init", zap.Error(err))
	}
	defer a.Close()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))
	registerRoutes(r, a, cfg.AdminUser, newQueryCache(a.Cache, a.Store, log))

	health := grpcx.NewHealth(log, serviceName)
	go func() {
		if err := health.ListenAndServe(ctx, cfg.GRPCHealthAddr); err != nil {
			log.Error("grpc health", zap.Error(err))
		}
	}()

	srv := &http.Server{Addr: cfg.CatalogSvcAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("listening", zap.String("addr", cfg.CatalogSvcAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http", zap.Error(err))
		}
	}()
	health.SetServing("", true)
	health.SetServing(serviceName, true)

	<-ctx.Done()
	health.SetServing(serviceName, false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("stopped")
}
