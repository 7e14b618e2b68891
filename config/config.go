/*
Package config loads the service configuration.

SOURCES (later wins):
  1. Built-in defaults (see setDefaults)
  2. config.yaml in ./configs or the working directory, or an explicit path
  3. .env in the working directory (loaded into the process environment)
  4. Environment variables prefixed CLASC_, with "." replaced by "_":
       CLASC_SERVER_PORT=9090
       CLASC_RATES_DB_PATH=./data/rates.db
       CLASC_LOG_FORMAT=json

SEE ALSO:
  - cmd/clasc/serve.go: Consumes Config
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLASC"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Rates     RatesConfig     `mapstructure:"rates"`
	Clock     ClockConfig     `mapstructure:"clock"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Site      SiteConfig      `mapstructure:"site"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RatesConfig selects where the reference tables come from. When both paths
// are empty the built-in table is used. RefreshInterval only applies to the
// database source; zero disables reloading.
type RatesConfig struct {
	DBPath          string        `mapstructure:"db_path"`
	File            string        `mapstructure:"file"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

type ClockConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// RateLimitConfig throttles calculator requests per client IP.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// SiteConfig holds the public contact channels rendered on the site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`
	Phone       string `mapstructure:"phone"`
	WhatsAppURL string `mapstructure:"whatsapp_url"`
	Email       string `mapstructure:"email"`
	Address     string `mapstructure:"address"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("rates.db_path", "")
	v.SetDefault("rates.file", "")
	v.SetDefault("rates.refresh_interval", 1*time.Hour)

	v.SetDefault("clock.timezone", "America/Bogota")

	v.SetDefault("ratelimit.rps", 2.0)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("site.name", "Clasc")
	v.SetDefault("site.phone", "573152588346")
	v.SetDefault("site.whatsapp_url", "https://wa.me/message/YZTASIELGU4PA1")
	v.SetDefault("site.email", "")
	v.SetDefault("site.address", "")
}

// Load reads the configuration. path may be empty to search the default
// locations; a missing default file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Rates.RefreshInterval < 0 {
		return fmt.Errorf("rates.refresh_interval must be non-negative")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("ratelimit values must be non-negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("ratelimit.burst must be at least 1 when ratelimit.rps is set")
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Clock.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Clock.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("unknown timezone %q: %w", c.Clock.Timezone, err)
	}
	return loc, nil
}
