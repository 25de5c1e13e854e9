package app

import (
	"context"
	"courier-tracking-service/internal/adapters/distance"
	"courier-tracking-service/internal/adapters/fixtures"
	"courier-tracking-service/internal/adapters/repositories"
	"courier-tracking-service/internal/config"
	"courier-tracking-service/internal/platform/db"
	"courier-tracking-service/internal/rowstore"
	"courier-tracking-service/internal/scenario"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func baseConfig() config.Config {
	return config.Config{
		Scenario:        "mock",
		RowSource:       config.SourceFixtures,
		ConfigPollDelay: 10 * time.Second,
		MapPollDelay:    time.Second,
		PathPollDelay:   time.Second,
		CentralLat:      37.785808985747316,
		CentralLng:      -122.40639245940856,
		StateCacheTTL:   time.Minute,
	}
}

func TestNewWithEmbeddedFixtures(t *testing.T) {
	a, err := New(context.Background(), baseConfig(), time.Now())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	state, ok, err := a.Service.SystemState(context.Background())
	if err != nil || !ok {
		t.Fatalf("SystemState = ok:%v err:%v", ok, err)
	}
	if len(state.Couriers) != 2 {
		t.Fatalf("couriers = %d, want 2", len(state.Couriers))
	}
}

func TestNewMissingFixtureDirFailsWithLoadError(t *testing.T) {
	cfg := baseConfig()
	cfg.FixtureDir = t.TempDir()

	_, err := New(context.Background(), cfg, time.Now())

	var le *rowstore.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *rowstore.LoadError", err)
	}
	if msg := StartupError(err); !strings.HasPrefix(msg, `cannot start: fixture "`+le.Fixture+`"`) {
		t.Fatalf("startup message = %q, want the fixture named", msg)
	}
}

func TestStartupErrorNamesFixture(t *testing.T) {
	err := fmt.Errorf("build: %w", &rowstore.LoadError{Fixture: "trips", Err: rowstore.ErrUnordered})
	if got, want := StartupError(err), `cannot start: fixture "trips": `+rowstore.ErrUnordered.Error(); got != want {
		t.Fatalf("StartupError = %q, want %q", got, want)
	}
	if got := StartupError(errors.New("boom")); got != "cannot start: boom" {
		t.Fatalf("StartupError = %q", got)
	}
}

func TestNewFromSQLiteWithRedisCache(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/rows.db"

	conn, err := db.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	logs, err := fixtures.NewLoader(fixtures.Embedded(), scenario.MockFixtures).LoadRows(ctx)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	if err := repositories.SeedRows(ctx, conn, db.SQLite, logs); err != nil {
		t.Fatalf("SeedRows: %v", err)
	}
	conn.Close()

	mr := miniredis.RunT(t)

	cfg := baseConfig()
	cfg.RowSource = config.SourceSQLite
	cfg.DBPath = path
	cfg.RedisAddr = mr.Addr()
	cfg.StateCachePrefix = "test"
	cfg.CompactRows = true

	a, err := New(ctx, cfg, time.Now())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, ok, err := a.Service.SystemState(ctx); err != nil || !ok {
		t.Fatalf("SystemState = ok:%v err:%v", ok, err)
	}
	if len(mr.Keys()) != 1 {
		t.Fatalf("expected one cached snapshot, have %v", mr.Keys())
	}
}

func TestDistanceProviderFallsBackWithoutKey(t *testing.T) {
	a := &App{}
	p := a.distanceProvider(context.Background(), baseConfig(), nil, db.SQLite)
	if _, ok := p.(distance.StraightLineProvider); !ok {
		t.Fatalf("provider = %T, want straight-line", p)
	}
}

func TestDescribe(t *testing.T) {
	cfg := baseConfig()
	if got := Describe(cfg); got != "embedded" {
		t.Fatalf("Describe = %q", got)
	}
	cfg.S3Bucket, cfg.S3Prefix = "b", "p"
	if got := Describe(cfg); got != "s3://b/p" {
		t.Fatalf("Describe = %q", got)
	}
}
