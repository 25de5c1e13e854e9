package repositories

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/platform/db"
	"courier-tracking-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
)

// SQLRowRepository implements ports.RowSource over the tables written by
// SeedRows. It works against SQLite and Postgres alike.
type SQLRowRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLRowRepository(conn *sql.DB, dialect db.Dialect) *SQLRowRepository {
	return &SQLRowRepository{DB: conn, Dialect: dialect}
}

// LoadRows returns every stored log ordered by tick, then by insertion order.
func (s *SQLRowRepository) LoadRows(ctx context.Context) (_ domain.RowLogs, err error) {
	defer obs.Time(ctx, "rows.LoadRows."+s.Dialect.String())(&err)

	if s.DB == nil {
		return domain.RowLogs{}, errors.New("sql row repository: DB is nil")
	}

	var logs domain.RowLogs
	if logs.Couriers, err = s.listCouriers(ctx); err != nil {
		return domain.RowLogs{}, err
	}
	if logs.Packages, err = s.listPackages(ctx); err != nil {
		return domain.RowLogs{}, err
	}
	if logs.Vehicles, err = s.listVehicles(ctx); err != nil {
		return domain.RowLogs{}, err
	}
	if logs.Trips, err = s.listTrips(ctx); err != nil {
		return domain.RowLogs{}, err
	}

	return logs, nil
}

func (s *SQLRowRepository) listCouriers(ctx context.Context) ([]domain.CourierRow, error) {
	query := `
	SELECT tick, id, name, trip_id, package_id, vehicle_id
	FROM courier_rows
	ORDER BY tick, seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courier rows: query courier_rows table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CourierRow, 0, 64)
	for rows.Next() {
		var r domain.CourierRow
		var trip, pkg, vehicle sql.NullString
		if err := rows.Scan(&r.Tick, &r.ID, &r.Name, &trip, &pkg, &vehicle); err != nil {
			return nil, fmt.Errorf("list courier rows: scan row: %w", err)
		}
		r.TripID, r.PackageID, r.VehicleID = trip.String, pkg.String, vehicle.String
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courier rows: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLRowRepository) listPackages(ctx context.Context) ([]domain.PackageRow, error) {
	query := `
	SELECT tick, id, dest_lat, dest_lng, courier_id, delivered
	FROM package_rows
	ORDER BY tick, seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list package rows: query package_rows table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PackageRow, 0, 64)
	for rows.Next() {
		var r domain.PackageRow
		var courier sql.NullString
		var delivered int64
		if err := rows.Scan(&r.Tick, &r.ID, &r.Destination.Lat, &r.Destination.Lng, &courier, &delivered); err != nil {
			return nil, fmt.Errorf("list package rows: scan row: %w", err)
		}
		r.CourierID = courier.String
		r.Delivered = delivered != 0
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list package rows: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLRowRepository) listVehicles(ctx context.Context) ([]domain.VehicleRow, error) {
	query := `
	SELECT tick, id, name, courier_id
	FROM vehicle_rows
	ORDER BY tick, seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicle rows: query vehicle_rows table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.VehicleRow, 0, 16)
	for rows.Next() {
		var r domain.VehicleRow
		var courier sql.NullString
		if err := rows.Scan(&r.Tick, &r.ID, &r.Name, &courier); err != nil {
			return nil, fmt.Errorf("list vehicle rows: scan row: %w", err)
		}
		r.CourierID = courier.String
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicle rows: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLRowRepository) listTrips(ctx context.Context) ([]domain.TripRow, error) {
	query := `
	SELECT tick, id, lat, lng
	FROM trip_rows
	ORDER BY tick, seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trip rows: query trip_rows table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TripRow, 0, 128)
	for rows.Next() {
		var r domain.TripRow
		if err := rows.Scan(&r.Tick, &r.ID, &r.Position.Lat, &r.Position.Lng); err != nil {
			return nil, fmt.Errorf("list trip rows: scan row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trip rows: row iteration: %w", err)
	}

	return out, nil
}
