package repositories

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/platform/db"
	"courier-tracking-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// InitSchema creates the row log tables and the distance cache. The DDL is
// accepted by both SQLite and Postgres.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCourierRowsQuery := `
	CREATE TABLE IF NOT EXISTS courier_rows (
		seq INTEGER PRIMARY KEY,
		tick INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		trip_id TEXT,
		package_id TEXT,
		vehicle_id TEXT
	);
	`

	createPackageRowsQuery := `
	CREATE TABLE IF NOT EXISTS package_rows (
		seq INTEGER PRIMARY KEY,
		tick INTEGER NOT NULL,
		id TEXT NOT NULL,
		dest_lat DOUBLE PRECISION NOT NULL,
		dest_lng DOUBLE PRECISION NOT NULL,
		courier_id TEXT,
		delivered INTEGER NOT NULL DEFAULT 0
	);
	`

	createVehicleRowsQuery := `
	CREATE TABLE IF NOT EXISTS vehicle_rows (
		seq INTEGER PRIMARY KEY,
		tick INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		courier_id TEXT
	);
	`

	createTripRowsQuery := `
	CREATE TABLE IF NOT EXISTS trip_rows (
		seq INTEGER PRIMARY KEY,
		tick INTEGER NOT NULL,
		id TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
    ON distance_cache(destination, origin);
	`

	statements := []string{
		createCourierRowsQuery,
		createPackageRowsQuery,
		createVehicleRowsQuery,
		createTripRowsQuery,
		createDistanceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedRows replaces the stored row logs with logs. Each row keeps its position
// in the log as seq, so reading back in seq order restores the original order
// within a tick.
func SeedRows(ctx context.Context, conn *sql.DB, dialect db.Dialect, logs domain.RowLogs) (err error) {
	defer obs.Time(ctx, "rows.Seed")(&err)

	if conn == nil {
		return errors.New("seed rows: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed rows: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	couriers := make([][]any, len(logs.Couriers))
	for i, r := range logs.Couriers {
		couriers[i] = []any{i, r.Tick, r.ID, r.Name, nullable(r.TripID), nullable(r.PackageID), nullable(r.VehicleID)}
	}
	if err := upsertAll(ctx, tx, dialect, "courier_rows",
		[]string{"seq", "tick", "id", "name", "trip_id", "package_id", "vehicle_id"}, couriers); err != nil {
		return err
	}

	packages := make([][]any, len(logs.Packages))
	for i, r := range logs.Packages {
		delivered := 0
		if r.Delivered {
			delivered = 1
		}
		packages[i] = []any{i, r.Tick, r.ID, r.Destination.Lat, r.Destination.Lng, nullable(r.CourierID), delivered}
	}
	if err := upsertAll(ctx, tx, dialect, "package_rows",
		[]string{"seq", "tick", "id", "dest_lat", "dest_lng", "courier_id", "delivered"}, packages); err != nil {
		return err
	}

	vehicles := make([][]any, len(logs.Vehicles))
	for i, r := range logs.Vehicles {
		vehicles[i] = []any{i, r.Tick, r.ID, r.Name, nullable(r.CourierID)}
	}
	if err := upsertAll(ctx, tx, dialect, "vehicle_rows",
		[]string{"seq", "tick", "id", "name", "courier_id"}, vehicles); err != nil {
		return err
	}

	trips := make([][]any, len(logs.Trips))
	for i, r := range logs.Trips {
		trips[i] = []any{i, r.Tick, r.ID, r.Position.Lat, r.Position.Lng}
	}
	if err := upsertAll(ctx, tx, dialect, "trip_rows",
		[]string{"seq", "tick", "id", "lat", "lng"}, trips); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed rows: commit tx: %w", err)
	}

	return nil
}

// upsertAll writes rows keyed by seq and drops any stale rows past the end.
func upsertAll(
	ctx context.Context,
	tx *sql.Tx,
	dialect db.Dialect,
	table string,
	columns []string,
	rows [][]any,
) error {
	// Only table and column names are interpolated; all values are bound.
	set := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		set = append(set, c+" = EXCLUDED."+c)
	}
	query := fmt.Sprintf(`
	INSERT INTO %s (%s)
	VALUES (%s)
	ON CONFLICT (seq) DO UPDATE
	SET %s;
	`, table, strings.Join(columns, ", "), dialect.Placeholders(1, len(columns)), strings.Join(set, ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed %s: prepare insert: %w", table, err)
	}
	defer stmt.Close()

	for _, args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("seed %s: insert seq=%v: %w", table, args[0], err)
		}
	}

	trim := fmt.Sprintf(`DELETE FROM %s WHERE seq >= %s;`, table, dialect.Placeholder(1))
	if _, err := tx.ExecContext(ctx, trim, len(rows)); err != nil {
		return fmt.Errorf("seed %s: trim stale rows: %w", table, err)
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
