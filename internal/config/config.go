package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env             string
	CatalogSvcAddr  string
	ReportSvcAddr   string
	GRPCHealthAddr  string
	CatalogBaseURL  string
	PostgresDSN     string
	KVBackend       string
	RedisAddr       string
	BoltPath        string
	CacheTTL        time.Duration
	CacheSize       int
	CatalogSeed     string
	SeedDemoData    bool
	AdminUser       string
	AdminPassHash   string
	AdminPass       string
	ReportDir       string
	ReportCron      string
	ReportTimeFrame string
	SMTP            SMTP
	LogLevel        string
	LogFile         string
}

type SMTP struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

func (s SMTP) Enabled() bool { return s.Host != "" && s.To != "" }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return b
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	return Config{
		Env:             getenv("APP_ENV", "development"),
		CatalogSvcAddr:  getenv("CATALOG_SERVICE_ADDR", ":8081"),
		ReportSvcAddr:   getenv("REPORT_SERVICE_ADDR", ":8082"),
		GRPCHealthAddr:  getenv("GRPC_HEALTH_ADDR", ":50051"),
		CatalogBaseURL:  os.Getenv("CATALOG_BASE_URL"),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		KVBackend:       getenv("KV_BACKEND", "memory"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		BoltPath:        getenv("BOLT_PATH", "storefront.db"),
		CacheTTL:        getduration("CACHE_TTL", 5*time.Minute),
		CacheSize:       getint("CACHE_SIZE", 1024),
		CatalogSeed:     os.Getenv("CATALOG_SEED"),
		SeedDemoData:    getbool("SEED_DEMO_DATA", true),
		AdminUser:       getenv("ADMIN_USER", "admin"),
		AdminPassHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminPass:       os.Getenv("ADMIN_PASSWORD"),
		ReportDir:       getenv("REPORT_DIR", "reports"),
		ReportCron:      os.Getenv("REPORT_CRON"),
		ReportTimeFrame: getenv("REPORT_TIMEFRAME", "week"),
		SMTP: SMTP{
			Host: os.Getenv("SMTP_HOST"),
			Port: getint("SMTP_PORT", 587),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: getenv("SMTP_FROM", "reports@localhost"),
			To:   os.Getenv("SMTP_TO"),
		},
		LogLevel: getenv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}
}

// Log prints the settings worth knowing at startup. Secrets are left out.
func (c Config) Log(log *zap.Logger) {
	log.Named("config").Info("loaded",
		zap.String("env", c.Env),
		zap.String("catalog_addr", c.CatalogSvcAddr),
		zap.String("report_addr", c.ReportSvcAddr),
		zap.String("grpc_health_addr", c.GRPCHealthAddr),
		zap.Bool("postgres", c.PostgresDSN != ""),
		zap.String("kv_backend", c.KVBackend),
		zap.Duration("cache_ttl", c.CacheTTL),
		zap.Int("cache_size", c.CacheSize),
	)
}
