package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"flightfinder/internal/flight"
	"flightfinder/internal/seed"
	"flightfinder/pkg/db"
)

// PGFlightRepository reads and maintains the flight inventory in Postgres.
// Every failure is returned as *flight.RepositoryError.
type PGFlightRepository struct {
	db db.SQLExecutor
}

var _ flight.Repository = (*PGFlightRepository)(nil)

func NewFlightRepository(executor db.SQLExecutor) *PGFlightRepository {
	return &PGFlightRepository{db: executor}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const flightColumns = `
	f.id, f.airline_id, f.flight_number, f.origin_airport_id, f.destination_airport_id,
	f.departure_time, f.arrival_time, f.price::float8, f.currency,
	f.available_seats, f.stops, f.duration_minutes,
	al.id, al.code, al.name, al.logo_url,
	o.id, o.code, o.name, o.city, o.country, o.latitude, o.longitude,
	d.id, d.code, d.name, d.city, d.country, d.latitude, d.longitude`

const queryFlightsSQL = `SELECT` + flightColumns + `
FROM flights f
JOIN airlines al ON al.id = f.airline_id
JOIN airports o ON o.id = f.origin_airport_id
JOIN airports d ON d.id = f.destination_airport_id
WHERE lower(o.city) = lower($1)
  AND lower(d.city) = lower($2)
  AND f.departure_time >= $3
  AND f.departure_time < $4
  AND f.available_seats >= $5
ORDER BY f.departure_time, f.id`

func (r *PGFlightRepository) QueryFlights(ctx context.Context, q flight.FlightQuery) ([]flight.FlightRecord, error) {
	rows, err := r.db.QueryContext(ctx, queryFlightsSQL,
		q.OriginCity, q.DestinationCity, q.DepartFrom, q.DepartTo, q.MinSeats)
	if err != nil {
		return nil, &flight.RepositoryError{Op: "query flights", Err: err}
	}
	defer rows.Close()

	records := make([]flight.FlightRecord, 0)
	for rows.Next() {
		rec, err := scanFlightRecord(rows)
		if err != nil {
			return nil, &flight.RepositoryError{Op: "scan flight", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &flight.RepositoryError{Op: "query flights", Err: err}
	}
	return records, nil
}

func scanFlightRecord(s rowScanner) (flight.FlightRecord, error) {
	var (
		rec  flight.FlightRecord
		logo sql.NullString
	)
	err := s.Scan(
		&rec.Flight.ID, &rec.Flight.AirlineID, &rec.Flight.FlightNumber,
		&rec.Flight.OriginAirportID, &rec.Flight.DestinationAirportID,
		&rec.Flight.DepartureTime, &rec.Flight.ArrivalTime, &rec.Flight.Price, &rec.Flight.Currency,
		&rec.Flight.AvailableSeats, &rec.Flight.Stops, &rec.Flight.DurationMinutes,
		&rec.Airline.ID, &rec.Airline.Code, &rec.Airline.Name, &logo,
		&rec.Origin.ID, &rec.Origin.Code, &rec.Origin.Name, &rec.Origin.City,
		&rec.Origin.Country, &rec.Origin.Latitude, &rec.Origin.Longitude,
		&rec.Destination.ID, &rec.Destination.Code, &rec.Destination.Name, &rec.Destination.City,
		&rec.Destination.Country, &rec.Destination.Latitude, &rec.Destination.Longitude,
	)
	if err != nil {
		return flight.FlightRecord{}, err
	}

	// timestamptz comes back in the session zone; clock-time filters read UTC.
	rec.Flight.DepartureTime = rec.Flight.DepartureTime.UTC()
	rec.Flight.ArrivalTime = rec.Flight.ArrivalTime.UTC()
	rec.Airline.LogoURL = nullableString(logo)

	return rec, nil
}

const queryRoutesSQL = `SELECT
	r.id, r.origin_airport_id, r.destination_airport_id,
	r.min_price::float8, r.max_price::float8, r.flight_count, r.last_updated,
	o.id, o.code, o.name, o.city, o.country, o.latitude, o.longitude,
	d.id, d.code, d.name, d.city, d.country, d.latitude, d.longitude
FROM routes r
JOIN airports o ON o.id = r.origin_airport_id
JOIN airports d ON d.id = r.destination_airport_id
ORDER BY r.flight_count DESC, r.id`

func (r *PGFlightRepository) QueryRoutesWithAirports(ctx context.Context) ([]flight.RouteRecord, error) {
	rows, err := r.db.QueryContext(ctx, queryRoutesSQL)
	if err != nil {
		return nil, &flight.RepositoryError{Op: "query routes", Err: err}
	}
	defer rows.Close()

	records := make([]flight.RouteRecord, 0)
	for rows.Next() {
		rec, err := scanRouteRecord(rows)
		if err != nil {
			return nil, &flight.RepositoryError{Op: "scan route", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &flight.RepositoryError{Op: "query routes", Err: err}
	}
	return records, nil
}

func scanRouteRecord(s rowScanner) (flight.RouteRecord, error) {
	var rec flight.RouteRecord
	err := s.Scan(
		&rec.Route.ID, &rec.Route.OriginAirportID, &rec.Route.DestinationAirportID,
		&rec.Route.MinPrice, &rec.Route.MaxPrice, &rec.Route.FlightCount, &rec.Route.LastUpdated,
		&rec.Origin.ID, &rec.Origin.Code, &rec.Origin.Name, &rec.Origin.City,
		&rec.Origin.Country, &rec.Origin.Latitude, &rec.Origin.Longitude,
		&rec.Destination.ID, &rec.Destination.Code, &rec.Destination.Name, &rec.Destination.City,
		&rec.Destination.Country, &rec.Destination.Latitude, &rec.Destination.Longitude,
	)
	if err != nil {
		return flight.RouteRecord{}, err
	}
	rec.Route.LastUpdated = rec.Route.LastUpdated.UTC()
	return rec, nil
}

func (r *PGFlightRepository) ListAirlines(ctx context.Context) ([]flight.Airline, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, name, logo_url FROM airlines ORDER BY code`)
	if err != nil {
		return nil, &flight.RepositoryError{Op: "list airlines", Err: err}
	}
	defer rows.Close()

	airlines := make([]flight.Airline, 0)
	for rows.Next() {
		a, err := scanAirline(rows)
		if err != nil {
			return nil, &flight.RepositoryError{Op: "scan airline", Err: err}
		}
		airlines = append(airlines, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &flight.RepositoryError{Op: "list airlines", Err: err}
	}
	return airlines, nil
}

func scanAirline(s rowScanner) (flight.Airline, error) {
	var (
		a    flight.Airline
		logo sql.NullString
	)
	if err := s.Scan(&a.ID, &a.Code, &a.Name, &logo); err != nil {
		return flight.Airline{}, err
	}
	a.LogoURL = nullableString(logo)
	return a, nil
}

const airportColumns = `id, code, name, city, country, latitude, longitude`

func (r *PGFlightRepository) ListAirports(ctx context.Context) ([]flight.Airport, error) {
	return r.queryAirports(ctx, "list airports",
		`SELECT `+airportColumns+` FROM airports ORDER BY code`)
}

func (r *PGFlightRepository) AirportsByCity(ctx context.Context, city string) ([]flight.Airport, error) {
	return r.queryAirports(ctx, "airports by city",
		`SELECT `+airportColumns+` FROM airports WHERE lower(city) = lower($1) ORDER BY code`, city)
}

func (r *PGFlightRepository) queryAirports(ctx context.Context, op, query string, args ...any) ([]flight.Airport, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &flight.RepositoryError{Op: op, Err: err}
	}
	defer rows.Close()

	airports := make([]flight.Airport, 0)
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, &flight.RepositoryError{Op: "scan airport", Err: err}
		}
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &flight.RepositoryError{Op: op, Err: err}
	}
	return airports, nil
}

func scanAirport(s rowScanner) (flight.Airport, error) {
	var a flight.Airport
	err := s.Scan(&a.ID, &a.Code, &a.Name, &a.City, &a.Country, &a.Latitude, &a.Longitude)
	return a, err
}

const upsertRoutesSQL = `
INSERT INTO routes (origin_airport_id, destination_airport_id, min_price, max_price, flight_count, last_updated)
SELECT origin_airport_id, destination_airport_id, MIN(price), MAX(price), COUNT(*), $1::timestamptz
FROM flights
WHERE departure_time >= $1::timestamptz
GROUP BY origin_airport_id, destination_airport_id
ON CONFLICT (origin_airport_id, destination_airport_id) DO UPDATE SET
	min_price = EXCLUDED.min_price,
	max_price = EXCLUDED.max_price,
	flight_count = EXCLUDED.flight_count,
	last_updated = EXCLUDED.last_updated`

// Routes without upcoming flights keep their last known prices.
const zeroStaleRoutesSQL = `
UPDATE routes SET flight_count = 0, last_updated = $1::timestamptz
WHERE last_updated < $1::timestamptz`

// RefreshRoutes recomputes the route aggregates from flights departing at or
// after asOf, in one transaction. It returns the number of routes touched.
func (r *PGFlightRepository) RefreshRoutes(ctx context.Context, asOf time.Time) (int64, error) {
	var touched int64

	err := r.db.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, upsertRoutesSQL, asOf)
		if err != nil {
			return fmt.Errorf("upsert routes: %w", err)
		}
		upserted, err := res.RowsAffected()
		if err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, zeroStaleRoutesSQL, asOf)
		if err != nil {
			return fmt.Errorf("zero stale routes: %w", err)
		}
		zeroed, err := res.RowsAffected()
		if err != nil {
			return err
		}

		touched = upserted + zeroed
		return nil
	})
	if err != nil {
		return 0, &flight.RepositoryError{Op: "refresh routes", Err: err}
	}
	return touched, nil
}

// Seed inserts batch into an empty database in one transaction. It reports
// false without writing anything when airports already exist.
func (r *PGFlightRepository) Seed(ctx context.Context, batch *seed.Batch, now time.Time) (bool, error) {
	seeded := false

	err := r.db.WithTransaction(ctx, sql.LevelSerializable, func(ctx context.Context, tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM airports)`).Scan(&exists); err != nil {
			return fmt.Errorf("check airports: %w", err)
		}
		if exists {
			return nil
		}

		airlineIDs := make(map[string]int64, len(batch.Airlines))
		for _, a := range batch.Airlines {
			var id int64
			err := tx.QueryRowContext(ctx,
				`INSERT INTO airlines (code, name, logo_url) VALUES ($1, $2, $3) RETURNING id`,
				a.Code, a.Name, a.LogoURL,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("insert airline %s: %w", a.Code, err)
			}
			airlineIDs[a.Code] = id
		}

		airportIDs := make(map[string]int64, len(batch.Airports))
		for _, a := range batch.Airports {
			var id int64
			err := tx.QueryRowContext(ctx,
				`INSERT INTO airports (code, name, city, country, latitude, longitude)
				 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
				a.Code, a.Name, a.City, a.Country, a.Latitude, a.Longitude,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("insert airport %s: %w", a.Code, err)
			}
			airportIDs[a.Code] = id
		}

		for _, rt := range batch.Routes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO routes (origin_airport_id, destination_airport_id, min_price, max_price, flight_count, last_updated)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				airportIDs[rt.OriginCode], airportIDs[rt.DestinationCode], rt.MinPrice, rt.MaxPrice, rt.FlightCount, now,
			)
			if err != nil {
				return fmt.Errorf("insert route %s->%s: %w", rt.OriginCode, rt.DestinationCode, err)
			}
		}

		for _, fr := range batch.Flights {
			f := fr.Flight
			_, err := tx.ExecContext(ctx,
				`INSERT INTO flights (airline_id, flight_number, origin_airport_id, destination_airport_id,
				 departure_time, arrival_time, price, currency, available_seats, stops, duration_minutes)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				airlineIDs[fr.AirlineCode], f.FlightNumber, airportIDs[fr.OriginCode], airportIDs[fr.DestinationCode],
				f.DepartureTime, f.ArrivalTime, f.Price, f.Currency, f.AvailableSeats, f.Stops, f.DurationMinutes,
			)
			if err != nil {
				return fmt.Errorf("insert flight %s: %w", f.FlightNumber, err)
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, &flight.RepositoryError{Op: "seed", Err: err}
	}
	return seeded, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
