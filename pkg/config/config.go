package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development" validate:"oneof=development staging production test"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Ingest struct {
		Workers int `env:"INGEST_WORKERS" env-default:"4" validate:"gte=1,lte=64"`
	}
	Scoring struct {
		ConfidenceThreshold float64        `env:"SCORING_CONFIDENCE_THRESHOLD" env-default:"0.70" validate:"gte=-1,lte=1"`
		StddevMax           float64        `env:"SCORING_STDDEV_MAX" env-default:"0.25" validate:"gt=0"`
		WindowDays          int            `env:"SCORING_WINDOW_DAYS" env-default:"7" validate:"gte=1"`
		SourceWeights       map[string]int `env:"SCORING_SOURCE_WEIGHTS" env-default:"TikTok:10,Instagram:9,YouTube:8,Facebook:7,News:6" validate:"dive,gte=0,lte=10"`
	}
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// New loads the configuration once per process.
func New() (*Config, error) {
	once.Do(func() {
		cfg, loadErr = Load()
	})
	return cfg, loadErr
}

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	c := &Config{}
	if err := cleanenv.ReadEnv(c); err != nil {
		help, _ := cleanenv.GetDescription(c, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// GetDSN returns the postgres connection URL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
