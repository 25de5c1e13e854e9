// Package config reads process configuration from the environment.
package config

import (
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/scenario"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Row sources selectable with ROW_SOURCE.
const (
	SourceFixtures = "fixtures"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	Scenario        string        `env:"SCENARIO" envDefault:"production"`
	SpeedMultiplier float64       `env:"SPEED_MULTIPLIER" envDefault:"10"`
	SlowDelay       time.Duration `env:"SLOW_DELAY" envDefault:"10s"`
	BaseDelay       time.Duration `env:"BASE_DELAY"`

	RowSource   string `env:"ROW_SOURCE" envDefault:"fixtures"`
	FixtureDir  string `env:"FIXTURE_DIR"`
	CompactRows bool   `env:"COMPACT_ROWS"`

	S3Bucket    string `env:"FIXTURE_S3_BUCKET"`
	S3Region    string `env:"FIXTURE_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"FIXTURE_S3_ENDPOINT"`
	S3Prefix    string `env:"FIXTURE_S3_PREFIX"`
	S3PathStyle bool   `env:"FIXTURE_S3_PATH_STYLE"`
	S3AccessKey string `env:"FIXTURE_S3_ACCESS_KEY"`
	S3SecretKey string `env:"FIXTURE_S3_SECRET_KEY"`

	DBPath      string `env:"DB_PATH" envDefault:"data/tracking.db"`
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	StateCachePrefix string        `env:"STATE_CACHE_PREFIX" envDefault:"tracking:state"`
	StateCacheTTL    time.Duration `env:"STATE_CACHE_TTL" envDefault:"1h"`

	ORSAPIKey string `env:"ORS_API_KEY"`

	ConfigPollDelay time.Duration `env:"CONFIG_POLL_DELAY" envDefault:"10s"`
	MapPollDelay    time.Duration `env:"MAP_POLL_DELAY" envDefault:"1s"`
	PathPollDelay   time.Duration `env:"PATH_POLL_DELAY" envDefault:"1s"`

	CentralLat float64 `env:"CENTRAL_LAT" envDefault:"37.785808985747316"`
	CentralLng float64 `env:"CENTRAL_LNG" envDefault:"-122.40639245940856"`
}

// Load parses and validates the environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.RowSource) {
	case SourceFixtures, SourceSQLite:
	case SourcePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when ROW_SOURCE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("ROW_SOURCE %q: want fixtures, sqlite or postgres", c.RowSource))
	}

	if c.FixtureDir != "" && c.S3Bucket != "" {
		errs = append(errs, errors.New("FIXTURE_DIR and FIXTURE_S3_BUCKET are mutually exclusive"))
	}
	if (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		errs = append(errs, errors.New("FIXTURE_S3_ACCESS_KEY and FIXTURE_S3_SECRET_KEY must be set together"))
	}
	if c.ConfigPollDelay <= 0 || c.MapPollDelay <= 0 || c.PathPollDelay <= 0 {
		errs = append(errs, errors.New("poll delays must be positive"))
	}
	if c.CentralLat < -90 || c.CentralLat > 90 || c.CentralLng < -180 || c.CentralLng > 180 {
		errs = append(errs, fmt.Errorf("central location %f,%f out of range", c.CentralLat, c.CentralLng))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c Config) Delays() domain.Delays {
	return domain.Delays{
		Configuration: c.ConfigPollDelay,
		Map:           c.MapPollDelay,
		Path:          c.PathPollDelay,
	}
}

func (c Config) Central() domain.Location {
	return domain.Location{Lat: c.CentralLat, Lng: c.CentralLng}
}

// Environment builds the scenario named by SCENARIO.
func (c Config) Environment(start time.Time) (scenario.Environment, error) {
	central := c.Central()
	return scenario.ByName(c.Scenario, scenario.Options{
		Start:           start,
		SpeedMultiplier: c.SpeedMultiplier,
		SlowDelay:       c.SlowDelay,
		BaseDelay:       c.BaseDelay,
		Central:         &central,
	})
}

// Get returns the environment value for key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
