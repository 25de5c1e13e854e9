package config

import (
	"courier-tracking-service/internal/domain"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROW_SOURCE", "")
	t.Setenv("SCENARIO", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := domain.Delays{Configuration: 10 * time.Second, Map: time.Second, Path: time.Second}
	if cfg.Delays() != want {
		t.Fatalf("delays = %+v, want %+v", cfg.Delays(), want)
	}
	if cfg.Central() != domain.CentralLocation {
		t.Fatalf("central = %+v, want %+v", cfg.Central(), domain.CentralLocation)
	}
	if cfg.Port != "8080" || cfg.RowSource != SourceFixtures {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCENARIO", "slow4th")
	t.Setenv("SLOW_DELAY", "3s")
	t.Setenv("MAP_POLL_DELAY", "250ms")
	t.Setenv("CENTRAL_LAT", "1.5")
	t.Setenv("CENTRAL_LNG", "2.5")
	t.Setenv("FIXTURE_S3_ACCESS_KEY", "AKIA")
	t.Setenv("FIXTURE_S3_SECRET_KEY", "SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MapPollDelay != 250*time.Millisecond {
		t.Fatalf("map delay = %v", cfg.MapPollDelay)
	}
	if cfg.S3AccessKey != "AKIA" || cfg.S3SecretKey != "SECRET" {
		t.Fatalf("s3 credentials = %q/%q", cfg.S3AccessKey, cfg.S3SecretKey)
	}

	env, err := cfg.Environment(time.Now())
	if err != nil {
		t.Fatalf("Environment: %v", err)
	}
	if env.Name != "slow4th" || env.Central != (domain.Location{Lat: 1.5, Lng: 2.5}) {
		t.Fatalf("env = %+v", env)
	}
	for range 3 {
		env.Delay.Next()
	}
	if d := env.Delay.Next(); d != 3*time.Second {
		t.Fatalf("4th delay = %v, want 3s", d)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown source", map[string]string{"ROW_SOURCE": "csv"}, "ROW_SOURCE"},
		{"postgres without url", map[string]string{"ROW_SOURCE": "postgres", "DATABASE_URL": ""}, "DATABASE_URL"},
		{"dir and bucket", map[string]string{"FIXTURE_DIR": "x", "FIXTURE_S3_BUCKET": "y"}, "mutually exclusive"},
		{"access key without secret", map[string]string{"FIXTURE_S3_ACCESS_KEY": "AKIA"}, "set together"},
		{"zero delay", map[string]string{"PATH_POLL_DELAY": "0s"}, "poll delays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("TRACKING_TEST_KEY", "value")
	t.Setenv("TRACKING_TEST_BLANK", "  ")

	if got := Get("TRACKING_TEST_KEY", "fb"); got != "value" {
		t.Fatalf("Get = %q", got)
	}
	if got := Get("TRACKING_TEST_BLANK", "fb"); got != "fb" {
		t.Fatalf("blank should fall back, got %q", got)
	}
	if got := Get("TRACKING_TEST_MISSING", "fb"); got != "fb" {
		t.Fatalf("missing should fall back, got %q", got)
	}
}
