package config

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a new Redis client using the provided configuration.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	connMaxIdleTime, _ := time.ParseDuration(cfg.ConnMaxIdleTime)
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 30 * time.Minute // default
	}

	connMaxLifetime, _ := time.ParseDuration(cfg.ConnMaxLifetime)
	if connMaxLifetime == 0 {
		connMaxLifetime = 1 * time.Hour // default
	}

	options := &redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,

		ConnMaxIdleTime: connMaxIdleTime,
		ConnMaxLifetime: connMaxLifetime,
	}

	if cfg.EnableTLS {
		options.TLSConfig = &tls.Config{
			ServerName: cfg.Host,
		}
	}

	return redis.NewClient(options)
}
