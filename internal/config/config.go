// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration, populated from the environment.
type Config struct {
	Env       string          `env:"ENV" envDefault:"production"`
	HTTP      HTTPConfig      `envPrefix:"HTTP_"`
	Log       LogConfig       `envPrefix:"LOG_"`
	Auth      AuthConfig      `envPrefix:"AUTH_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	CORS      CORSConfig      `envPrefix:"CORS_"`
	Meta      MetaConfig      `envPrefix:"META_"`
	Launch    LaunchConfig    `envPrefix:"LAUNCH_"`
	Media     MediaConfig     `envPrefix:"MEDIA_"`
}

type HTTPConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"180s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

type AuthConfig struct {
	// JWTSecret enables bearer-token auth on the launch routes when set.
	JWTSecret string `env:"JWT_SECRET"`
}

type RateLimitConfig struct {
	Enabled bool    `env:"ENABLED" envDefault:"true"`
	RPS     float64 `env:"RPS" envDefault:"5"`
	Burst   int     `env:"BURST" envDefault:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

// MetaConfig points the Graph API client somewhere, usually the real thing.
type MetaConfig struct {
	BaseURL       string        `env:"BASE_URL" envDefault:"https://graph.facebook.com"`
	Version       string        `env:"VERSION" envDefault:"v16.0"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"15s"`
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"120s"`
}

// LaunchConfig holds the campaign assembly policy.
type LaunchConfig struct {
	MinDailyBudgetCents int64         `env:"MIN_DAILY_BUDGET_CENTS" envDefault:"576"`
	BidAmountCents      int64         `env:"BID_AMOUNT_CENTS" envDefault:"100"`
	Countries           []string      `env:"COUNTRIES" envDefault:"BR"`
	PublisherPlatforms  []string      `env:"PUBLISHER_PLATFORMS" envDefault:"facebook,instagram"`
	ThumbnailAttempts   int           `env:"THUMBNAIL_ATTEMPTS" envDefault:"5"`
	ThumbnailDelay      time.Duration `env:"THUMBNAIL_DELAY" envDefault:"2s"`
	RollbackTimeout     time.Duration `env:"ROLLBACK_TIMEOUT" envDefault:"10s"`
	PlaceholderImageURL string        `env:"PLACEHOLDER_IMAGE_URL" envDefault:"https://via.placeholder.com/1200x628.png"`
	DefaultLinkURL      string        `env:"DEFAULT_LINK_URL" envDefault:"https://www.example.com"`
}

type MediaConfig struct {
	// ForceDownload routes http(s) video references through a local download
	// and file upload instead of handing the URL to the platform.
	ForceDownload bool  `env:"FORCE_DOWNLOAD" envDefault:"false"`
	MaxFetchBytes int64 `env:"MAX_FETCH_BYTES" envDefault:"268435456"`
	S3Enabled     bool  `env:"S3_ENABLED" envDefault:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
