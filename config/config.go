package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service *ServiceConfig
	Cache   *CacheConfig
}

type ServiceConfig struct {
	Address        string        `envconfig:"TRADELINE_ADDRESS" default:":8080"`
	LogLevel       string        `envconfig:"TRADELINE_LOG_LEVEL" default:"info"`
	AllowedOrigins []string      `envconfig:"TRADELINE_ALLOWED_ORIGINS" default:"*"`
	RateLimit      int           `envconfig:"TRADELINE_RATE_LIMIT" default:"60"`
	RateWindow     time.Duration `envconfig:"TRADELINE_RATE_WINDOW" default:"1m"`
	HistoryLimit   int           `envconfig:"TRADELINE_HISTORY_LIMIT" default:"500"`
	// TrustProxyHeaders keys clients by X-Real-IP/X-Forwarded-For. Only enable
	// behind a proxy that sets them.
	TrustProxyHeaders bool `envconfig:"TRADELINE_TRUST_PROXY_HEADERS" default:"false"`
}

type CacheConfig struct {
	// RedisAddr selects the Redis cache; empty keeps results in process memory.
	RedisAddr string        `envconfig:"TRADELINE_REDIS_ADDR" default:""`
	TTL       time.Duration `envconfig:"TRADELINE_CACHE_TTL" default:"10m"`
}

// New reads the configuration from the environment.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
