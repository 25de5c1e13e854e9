// Package app assembles the tracking service from configuration. It is shared
// by the cmd entry points.
package app

import (
	"context"
	"courier-tracking-service/internal/adapters/cache"
	"courier-tracking-service/internal/adapters/distance"
	"courier-tracking-service/internal/adapters/fixtures"
	"courier-tracking-service/internal/adapters/repositories"
	"courier-tracking-service/internal/config"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/platform/db"
	"courier-tracking-service/internal/platform/metrics"
	"courier-tracking-service/internal/ports"
	"courier-tracking-service/internal/rowstore"
	"courier-tracking-service/internal/scenario"
	"courier-tracking-service/internal/services"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// App is a wired tracking service plus the resources it owns.
type App struct {
	Service  *services.TrackingService
	Scenario *scenario.Holder
	Registry *prometheus.Registry

	closers []func() error
}

// Close releases database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New loads the row logs for the configured scenario and wires the service.
// A row source that cannot be read fails startup with a *rowstore.LoadError.
func New(ctx context.Context, cfg config.Config, start time.Time) (*App, error) {
	env, err := cfg.Environment(start)
	if err != nil {
		return nil, err
	}

	a := &App{Registry: prometheus.NewRegistry()}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	src, conn, dialect, err := a.rowSource(ctx, cfg, env.Fixtures)
	if err != nil {
		a.Close()
		return nil, err
	}
	if cfg.CompactRows {
		src = compacting{src}
	}

	store, err := rowstore.Load(ctx, src)
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Printf("rows loaded: scenario=%s source=%s rows=%d", env.Name, Describe(cfg), store.Len())

	opts := []services.Option{
		services.WithMetrics(metrics.New(a.Registry)),
		services.WithDistanceProvider(a.distanceProvider(ctx, cfg, conn, dialect)),
	}
	if sc := a.stateCache(ctx, cfg); sc != nil {
		opts = append(opts, services.WithStateCache(sc))
	}

	a.Scenario = scenario.NewHolder(env)
	a.Service = services.NewTrackingService(store, a.Scenario, cfg.Delays(), opts...)
	return a, nil
}

func (a *App) rowSource(
	ctx context.Context,
	cfg config.Config,
	names scenario.Fixtures,
) (ports.RowSource, *sql.DB, db.Dialect, error) {
	switch strings.ToLower(cfg.RowSource) {
	case config.SourceSQLite:
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, 0, err
		}
		a.closers = append(a.closers, conn.Close)
		return repositories.NewSQLRowRepository(conn, db.SQLite), conn, db.SQLite, nil

	case config.SourcePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, 0, err
		}
		a.closers = append(a.closers, conn.Close)
		return repositories.NewSQLRowRepository(conn, db.Postgres), conn, db.Postgres, nil
	}

	opener, err := FixtureOpener(ctx, cfg)
	if err != nil {
		return nil, nil, 0, err
	}
	return fixtures.NewLoader(opener, names), nil, 0, nil
}

// FixtureOpener picks S3, a directory, or the embedded fixtures, in that order.
func FixtureOpener(ctx context.Context, cfg config.Config) (fixtures.Opener, error) {
	switch {
	case cfg.S3Bucket != "":
		return fixtures.NewS3Opener(ctx, fixtures.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case cfg.FixtureDir != "":
		return fixtures.Dir(cfg.FixtureDir), nil
	default:
		return fixtures.Embedded(), nil
	}
}

func (a *App) distanceProvider(
	ctx context.Context,
	cfg config.Config,
	conn *sql.DB,
	dialect db.Dialect,
) ports.DistanceProvider {
	if strings.TrimSpace(cfg.ORSAPIKey) == "" {
		log.Printf("ORS_API_KEY not set, using straight-line distances")
		return distance.NewStraightLineProvider(distance.DefaultCourierSpeed)
	}

	var orsOpts []distance.ORSOption
	if conn != nil {
		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Printf("distance cache disabled: %v", err)
		} else {
			orsOpts = append(orsOpts, distance.WithDistanceCache(cache.NewSQLDistanceCache(conn, dialect)))
		}
	}

	provider, err := distance.NewORSDistanceProvider(cfg.ORSAPIKey, orsOpts...)
	if err != nil {
		log.Printf("ORS provider unavailable, using straight-line distances: %v", err)
		return distance.NewStraightLineProvider(distance.DefaultCourierSpeed)
	}
	return provider
}

// stateCache connects to Redis when configured. An unreachable server only
// disables caching.
func (a *App) stateCache(ctx context.Context, cfg config.Config) ports.StateCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("state cache disabled: redis %s: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}

	a.closers = append(a.closers, client.Close)
	return cache.NewRedisStateCache(client, cfg.StateCachePrefix, cfg.StateCacheTTL)
}

// compacting drops rows that repeat the previous state of the same entity.
type compacting struct {
	src ports.RowSource
}

func (c compacting) LoadRows(ctx context.Context) (domain.RowLogs, error) {
	logs, err := c.src.LoadRows(ctx)
	if err != nil {
		return domain.RowLogs{}, err
	}
	return rowstore.CompactLogs(logs), nil
}

// StartupError formats an error from New for a fatal log line. A broken
// fixture is named explicitly.
func StartupError(err error) string {
	var le *rowstore.LoadError
	if errors.As(err, &le) {
		return fmt.Sprintf("cannot start: fixture %q: %v", le.Fixture, le.Err)
	}
	return "cannot start: " + err.Error()
}

// Describe summarises where rows come from, for startup logs.
func Describe(cfg config.Config) string {
	switch strings.ToLower(cfg.RowSource) {
	case config.SourceSQLite:
		return fmt.Sprintf("sqlite:%s", cfg.DBPath)
	case config.SourcePostgres:
		return "postgres"
	}
	switch {
	case cfg.S3Bucket != "":
		return fmt.Sprintf("s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix)
	case cfg.FixtureDir != "":
		return "dir:" + cfg.FixtureDir
	}
	return "embedded"
}
