package config

import (
	"errors"
	"net"
	"time"

	"github.com/caarlos0/env/v6"
)

// HubSpotConfig holds connection settings for the remote CRM API.
type HubSpotConfig struct {
	BaseURL      string        `env:"HUBSPOT_BASE_URL" envDefault:"https://api.hubapi.com" json:"base_url"`
	ClientID     string        `env:"HUBSPOT_CLIENT_ID" json:"-"`
	ClientSecret string        `env:"HUBSPOT_CLIENT_SECRET" json:"-"`
	HTTPTimeout  time.Duration `env:"HUBSPOT_HTTP_TIMEOUT" envDefault:"30s" json:"http_timeout"`
}

// SyncConfig tunes the incremental sync loop.
type SyncConfig struct {
	// PageSize is the search page size. The provider caps it at 100.
	PageSize int `env:"SYNC_PAGE_SIZE" envDefault:"100" json:"page_size"`

	// MaxRetries is the number of additional search attempts after the
	// first failure.
	MaxRetries int `env:"SYNC_MAX_RETRIES" envDefault:"4" json:"max_retries"`

	// RetryBaseDelay seeds the exponential backoff: the n-th retry waits
	// RetryBaseDelay * 2^n.
	RetryBaseDelay time.Duration `env:"SYNC_RETRY_BASE_DELAY" envDefault:"5s" json:"retry_base_delay"`
}

// RedisConfig holds connection settings for the action queue.
type RedisConfig struct {
	Host            string `env:"REDIS_HOST" envDefault:"localhost" json:"host"`
	Port            string `env:"REDIS_PORT" envDefault:"6379" json:"port"`
	Password        string `env:"REDIS_PASSWORD" json:"-"`
	Database        int    `env:"REDIS_DATABASE" envDefault:"0" json:"database"`
	MaxRetries      int    `env:"REDIS_MAX_RETRIES" envDefault:"3" json:"max_retries"`
	PoolSize        int    `env:"REDIS_POOL_SIZE" envDefault:"10" json:"pool_size"`
	MinIdleConns    int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2" json:"min_idle_conns"`
	EnableTLS       bool   `env:"REDIS_ENABLE_TLS" envDefault:"false" json:"enable_tls"`
	ConnMaxIdleTime string `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"30m" json:"conn_max_idle_time"`
	ConnMaxLifetime string `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"1h" json:"conn_max_lifetime"`

	// ActionStream is the Redis Stream actions are pushed to.
	ActionStream    string `env:"REDIS_ACTION_STREAM" envDefault:"hubsync:actions" json:"action_stream"`
	StreamMaxLength int64  `env:"REDIS_STREAM_MAX_LENGTH" envDefault:"100000" json:"stream_max_length"`
}

// GetAddr returns the host:port address of the Redis server.
func (c *RedisConfig) GetAddr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// AuthConfig holds settings for the service-token middleware guarding
// the trigger API.
type AuthConfig struct {
	JWTSecretKey string        `env:"JWT_SECRET_KEY" json:"-"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"hubsync" json:"jwt_issuer"`
	TokenTTL     time.Duration `env:"SERVICE_TOKEN_TTL" envDefault:"1h" json:"token_ttl"`
}

// Config aggregates all configuration of the sync module.
type Config struct {
	HubSpot HubSpotConfig
	Sync    SyncConfig
	Redis   RedisConfig
	Auth    AuthConfig
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(&cfg.HubSpot); err != nil {
		return nil, errors.New("failed to load hubspot configuration from environment: " + err.Error())
	}
	if err := env.Parse(&cfg.Sync); err != nil {
		return nil, errors.New("failed to load sync configuration from environment: " + err.Error())
	}
	if err := env.Parse(&cfg.Redis); err != nil {
		return nil, errors.New("failed to load redis configuration from environment: " + err.Error())
	}
	if err := env.Parse(&cfg.Auth); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error())
	}

	if cfg.Auth.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY environment variable is not set")
	}
	if cfg.Sync.PageSize <= 0 || cfg.Sync.PageSize > 100 {
		cfg.Sync.PageSize = 100
	}
	if cfg.Sync.MaxRetries < 0 {
		cfg.Sync.MaxRetries = 4
	}
	if cfg.Sync.RetryBaseDelay <= 0 {
		cfg.Sync.RetryBaseDelay = 5 * time.Second
	}

	return cfg, nil
}

// DefaultConfig returns a Config with default values, useful for tests
// and local development.
func DefaultConfig() *Config {
	return &Config{
		HubSpot: HubSpotConfig{
			BaseURL:     "https://api.hubapi.com",
			HTTPTimeout: 30 * time.Second,
		},
		Sync: SyncConfig{
			PageSize:       100,
			MaxRetries:     4,
			RetryBaseDelay: 5 * time.Second,
		},
		Redis: RedisConfig{
			Host:            "localhost",
			Port:            "6379",
			Database:        0,
			MaxRetries:      3,
			PoolSize:        10,
			MinIdleConns:    2,
			ConnMaxIdleTime: "30m",
			ConnMaxLifetime: "1h",
			ActionStream:    "hubsync:actions",
			StreamMaxLength: 100000,
		},
		Auth: AuthConfig{
			JWTIssuer: "hubsync",
			TokenTTL:  time.Hour,
		},
	}
}
