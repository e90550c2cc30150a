// Package config loads runtime configuration from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	RedisAddr      string
	JWTSecret      string
	OrgCacheTTL    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables, falling back to
// development defaults. DATABASE_URL has no default and must be set.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("JWT_SECRET", "super-secret-key") // override in prod
	v.SetDefault("ORG_CACHE_TTL", "5m")
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 3)

	return Config{
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		OrgCacheTTL:    v.GetDuration("ORG_CACHE_TTL"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
	}
}
