// @title           Storefront Report API
// @version         1.0
// @description     CSV and Excel exports of orders, products, customers, reviews and bookings.
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
	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/app"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/export"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/jobs"
	"github.com/MikeMC777/storefront/internal/logging"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/source"
)

const serviceName = "report"

// newSource reads from a running catalog-service when CATALOG_BASE_URL is set,
// otherwise straight from the repositories.
func newSource(cfg config.Config, a *app.App, log *zap.Logger) source.Source {
	if cfg.CatalogBaseURL != "" {
		log.Info("reading from catalog service", zap.String("url", cfg.CatalogBaseURL))
		if cfg.AdminPass == "" {
			log.Warn("ADMIN_PASSWORD not set, catalog service admin routes will reject report reads")
		}
		return source.NewHTTP(cfg.CatalogBaseURL, cfg.AdminUser, cfg.AdminPass)
	}
	return source.Repos{OrderRepo: a.Orders, ProductRepo: a.Products, ReviewRepo: a.Reviews, BookingSvc: a.Bookings}
}

func registerRoutes(r *gin.Engine, exp *export.Exporter, adminUser, adminHash string, log *zap.Logger) {
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	g := r.Group("/reports", httpx.AdminAuth(adminUser, adminHash))
	g.GET("", kindsHandler())
	g.GET("/:kind", reportHandler(exp, log))
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

	exp := export.New(newSource(cfg, a, log), report.NewAggregator(), log)

	if cfg.ReportCron != "" {
		var mailer jobs.Mailer
		if cfg.SMTP.Enabled() {
			mailer = jobs.NewSMTPMailer(cfg.SMTP)
		}
		job, err := jobs.NewReportJob(exp, cfg.ReportDir, cfg.ReportTimeFrame, mailer, log)
		if err != nil {
			log.Fatal("report job", zap.Error(err))
		}
		if err := job.Start(cfg.ReportCron); err != nil {
			log.Fatal("report job", zap.Error(err))
		}
		defer job.Stop()
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))
	registerRoutes(r, exp, cfg.AdminUser, a.AdminHash, log)

	srv := &http.Server{Addr: cfg.ReportSvcAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("listening", zap.String("addr", cfg.ReportSvcAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("stopped")
}
