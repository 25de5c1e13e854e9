package main

import (
	"context"
	"courier-tracking-service/internal/adapters/fixtures"
	"courier-tracking-service/internal/adapters/repositories"
	"courier-tracking-service/internal/app"
	"courier-tracking-service/internal/config"
	"courier-tracking-service/internal/platform/db"
	"courier-tracking-service/internal/rowstore"
	"courier-tracking-service/internal/scenario"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dbtool initialises the SQL schema and seeds it with the fixture row logs of
// the configured scenario. DB_TARGET selects sqlite (DB_PATH) or postgres
// (DATABASE_URL).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	env, err := cfg.Environment(time.Now())
	if err != nil {
		log.Fatal(err)
	}

	conn, dialect, err := openTarget(cfg, config.Get("DB_TARGET", config.SourceSQLite))
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, cfg, conn, dialect, env.Fixtures); err != nil {
		log.Fatal(err)
	}
}

func openTarget(cfg config.Config, target string) (*sql.DB, db.Dialect, error) {
	if strings.EqualFold(target, config.SourcePostgres) {
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			log.Fatal("DATABASE_URL is required")
		}
		conn, err := db.Open(cfg.DatabaseURL)
		return conn, db.Postgres, err
	}
	conn, err := db.OpenSQLite(cfg.DBPath)
	return conn, db.SQLite, err
}

func initAndSeed(
	ctx context.Context,
	cfg config.Config,
	conn *sql.DB,
	dialect db.Dialect,
	names scenario.Fixtures,
) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	opener, err := app.FixtureOpener(ctx, cfg)
	if err != nil {
		return err
	}

	// Validate through the store so only well-formed logs reach the database.
	store, err := rowstore.Load(ctx, fixtures.NewLoader(opener, names))
	if err != nil {
		return err
	}
	logs := store.Logs()
	if cfg.CompactRows {
		logs = rowstore.CompactLogs(logs)
	}

	log.Printf("Seeding database... dialect=%s rows=%d", dialect, store.Len())
	if err := repositories.SeedRows(ctx, conn, dialect, logs); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
