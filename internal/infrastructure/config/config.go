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

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	Timezone  string        `env:"TIMEZONE,  default=UTC"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Presence PresenceConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=visitor_admin"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type PresenceConfig struct {
	Workers   int           `env:"PRESENCE_WORKERS,   default=4"`
	Retention time.Duration `env:"PRESENCE_RETENTION, default=720h"`
}

// Development reports whether the service runs with ENV=development.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Location resolves TIMEZONE; it decides which calendar day a visit falls on.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
