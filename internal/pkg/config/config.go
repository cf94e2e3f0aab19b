package config

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the storefront client shell configuration. The shell holds a
// single session for whoever can reach it, so Host defaults to loopback.
type Config struct {
	Host     string `env:"HOST,      default=127.0.0.1"`
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Session SessionConfig
	Redis   RedisConfig
}

// AuthConfig locates the remote authentication service.
type AuthConfig struct {
	BaseURL string        `env:"AUTH_BASE_URL, default=http://localhost:8081"`
	Timeout time.Duration `env:"AUTH_TIMEOUT,  default=10s"`
}

// SessionConfig selects where the durable session copy lives.
type SessionConfig struct {
	Storage   string `env:"SESSION_STORAGE,   default=redis"`
	Namespace string `env:"SESSION_NAMESPACE, default=storefront"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AuthServerConfig is the configuration of the reference auth service.
type AuthServerConfig struct {
	Port      string        `env:"AUTH_PORT,  default=8081"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	// Accounts is mongo or memory.
	Accounts      string `env:"ACCOUNT_STORAGE, default=mongo"`
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

// Addr is the listen address of the client shell.
func (c *Config) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// IsProduction reports whether logs should be emitted as plain JSON.
func (c *Config) IsProduction() bool { return c.Env == "production" }

func (c *AuthServerConfig) IsProduction() bool { return c.Env == "production" }

// Load reads the client shell configuration from environment variables.
func Load() *Config {
	var cfg Config
	mustProcess(&cfg)
	return &cfg
}

// LoadAuthServer reads the auth service configuration from environment variables.
func LoadAuthServer() *AuthServerConfig {
	var cfg AuthServerConfig
	mustProcess(&cfg)
	return &cfg
}

func mustProcess(cfg any) {
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
}
