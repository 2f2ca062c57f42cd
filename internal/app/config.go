package app

import (
	"strings"
	"time"

	"github.com/yungbote/pactify-backend/internal/clients/redis"
	"github.com/yungbote/pactify-backend/internal/data/db"
	httpMW "github.com/yungbote/pactify-backend/internal/http/middleware"
	"github.com/yungbote/pactify-backend/internal/observability"
	"github.com/yungbote/pactify-backend/internal/platform/envutil"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

const (
	WizardStoreMemory = "memory"
	WizardStoreRedis  = "redis"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
	CookieDomain    string
	AllowedOrigins  []string

	DB db.Config

	Redis        redis.Config
	RedisChannel string

	WizardStore string
	WizardTTL   time.Duration

	MetricsEnabled bool
	MetricsAddr    string
	MetricsScrape  time.Duration

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "8080", log),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  envutil.Duration("ACCESS_TOKEN_TTL", time.Hour, log),
		RefreshTokenTTL: envutil.Duration("REFRESH_TOKEN_TTL", 24*time.Hour, log),
		CookieSecure:    envutil.Bool("COOKIE_SECURE", false, log),
		CookieDomain:    envutil.String("COOKIE_DOMAIN", "", log),
		AllowedOrigins:  splitList(envutil.String("CORS_ALLOWED_ORIGINS", "", log)),

		DB: db.Config{
			Driver:     strings.ToLower(envutil.String("DB_DRIVER", "postgres", log)),
			Host:       envutil.String("POSTGRES_HOST", "localhost", log),
			Port:       envutil.String("POSTGRES_PORT", "5432", log),
			User:       envutil.String("POSTGRES_USER", "postgres", log),
			Password:   envutil.String("POSTGRES_PASSWORD", "", log),
			Name:       envutil.String("POSTGRES_NAME", "pactify", log),
			SSLMode:    envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath: envutil.String("SQLITE_PATH", "pactify.db", log),
		},

		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", log),
			DB:       envutil.Int("REDIS_DB", 0, log),
		},
		RedisChannel: envutil.String("REDIS_CHANNEL", "pactify:sse", log),

		WizardStore: strings.ToLower(envutil.String("WIZARD_STORE", WizardStoreMemory, log)),
		WizardTTL:   envutil.Duration("WIZARD_TTL", time.Hour, log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false, log),
		MetricsAddr:    envutil.String("METRICS_ADDR", ":9090", log),
		MetricsScrape:  envutil.Duration("METRICS_SCRAPE_INTERVAL", 15*time.Second, log),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "pactify-backend", log),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development", log),
			Version:     envutil.String("OTEL_SERVICE_VERSION", "dev", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 1.0, log),
		},
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = httpMW.DefaultAllowedOrigins
	}
	if cfg.WizardStore == WizardStoreRedis && cfg.Redis.Addr == "" {
		log.Warn("WIZARD_STORE=redis without REDIS_ADDR, falling back to memory")
		cfg.WizardStore = WizardStoreMemory
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY is not set, using the development default")
	}
	return cfg
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
