package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DenylistMongo = "mongo"
	DenylistRedis = "redis"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=5m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=24h"`
	// Denylist selects where revoked refresh tokens are persisted: mongo or redis.
	Denylist string `env:"TOKEN_DENYLIST, default=mongo"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017/?replicaSet=rs0"`
	Database string        `env:"MONGO_DB,      default=proposals"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig. Variables already set in the environment
// take precedence over the file.
func Load(ctx context.Context, dotenvPaths ...string) (*Config, error) {
	if err := godotenv.Load(dotenvPaths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.Denylist {
	case DenylistMongo, DenylistRedis:
	default:
		return fmt.Errorf("config: TOKEN_DENYLIST must be %q or %q, got %q", DenylistMongo, DenylistRedis, c.Auth.Denylist)
	}
	if c.Auth.AccessTokenTTL >= c.Auth.RefreshTokenTTL {
		return errors.New("config: ACCESS_TOKEN_TTL must be shorter than REFRESH_TOKEN_TTL")
	}
	return nil
}
