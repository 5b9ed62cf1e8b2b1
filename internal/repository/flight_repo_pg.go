package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightFilter holds the independent AND predicates of the flight list.
type FlightFilter struct {
	SourceAirportID      *int64
	DestinationAirportID *int64
	SourceCityID         *int64
	DestinationCityID    *int64
	DepartureAfter       *time.Time
}

func (f FlightFilter) Empty() bool {
	return f.SourceAirportID == nil &&
		f.DestinationAirportID == nil &&
		f.SourceCityID == nil &&
		f.DestinationCityID == nil &&
		f.DepartureAfter == nil
}

type FlightRepository interface {
	List(ctx context.Context, filter FlightFilter) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error
	GetAirplanes(ctx context.Context, flightIDs []int64) (map[int64]domain.Airplane, error)
	FindOverbooked(ctx context.Context) ([]domain.OverbookedFlight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// List returns flights with tickets_available computed inside the query, so
// every row reflects exactly the tickets that existed at query time.
func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter) ([]domain.FlightSummary, error) {
	query := `SELECT f.id, src.name, dst.name, f.departure_time, f.arrival_time,
			a.seat_rows * a.seats_in_row - COUNT(t.id) AS tickets_available
		FROM flights f
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_airport_id
		JOIN airports dst ON dst.id = r.destination_airport_id
		JOIN airplanes a ON a.id = f.airplane_id
		LEFT JOIN tickets t ON t.flight_id = f.id`

	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.SourceAirportID != nil {
		conds = append(conds, "src.id = "+arg(*filter.SourceAirportID))
	}
	if filter.DestinationAirportID != nil {
		conds = append(conds, "dst.id = "+arg(*filter.DestinationAirportID))
	}
	if filter.SourceCityID != nil {
		conds = append(conds, "src.city_id = "+arg(*filter.SourceCityID))
	}
	if filter.DestinationCityID != nil {
		conds = append(conds, "dst.city_id = "+arg(*filter.DestinationCityID))
	}
	if filter.DepartureAfter != nil {
		conds = append(conds, "f.departure_time >= "+arg(*filter.DepartureAfter))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` GROUP BY f.id, src.name, dst.name, a.seat_rows, a.seats_in_row
		ORDER BY f.departure_time, f.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightSummary, 0)
	for rows.Next() {
		var f domain.FlightSummary
		if err := rows.Scan(&f.ID, &f.Source, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.TicketsAvailable); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	var d domain.FlightDetail
	err := r.db.QueryRow(ctx, `SELECT f.id, f.departure_time, f.arrival_time,
			r.id, r.distance,
			src.id, src.name, sc.name, scc.name,
			dst.id, dst.name, dc.name, dcc.name,
			a.id, a.name, a.seat_rows, a.seats_in_row, a.airplane_type_id, apt.name
		FROM flights f
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_airport_id
		JOIN cities sc ON sc.id = src.city_id
		JOIN countries scc ON scc.id = sc.country_id
		JOIN airports dst ON dst.id = r.destination_airport_id
		JOIN cities dc ON dc.id = dst.city_id
		JOIN countries dcc ON dcc.id = dc.country_id
		JOIN airplanes a ON a.id = f.airplane_id
		JOIN airplane_types apt ON apt.id = a.airplane_type_id
		WHERE f.id = $1`, id).Scan(
		&d.ID, &d.DepartureTime, &d.ArrivalTime,
		&d.Route.ID, &d.Route.Distance,
		&d.Route.Source.ID, &d.Route.Source.Name, &d.Route.Source.CityName, &d.Route.Source.CountryName,
		&d.Route.Destination.ID, &d.Route.Destination.Name, &d.Route.Destination.CityName, &d.Route.Destination.CountryName,
		&d.Airplane.ID, &d.Airplane.Name, &d.Airplane.Rows, &d.Airplane.SeatsInRow, &d.Airplane.AirplaneTypeID, &d.Airplane.TypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	crewRows, err := r.db.Query(ctx, `SELECT c.first_name, c.last_name
		FROM flight_crew fc
		JOIN crews c ON c.id = fc.crew_id
		WHERE fc.flight_id = $1
		ORDER BY c.last_name, c.first_name`, id)
	if err != nil {
		return nil, err
	}
	defer crewRows.Close()
	d.Crew = make([]string, 0)
	for crewRows.Next() {
		var c domain.Crew
		if err := crewRows.Scan(&c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		d.Crew = append(d.Crew, c.FullName())
	}
	if err := crewRows.Err(); err != nil {
		return nil, err
	}

	seatRows, err := r.db.Query(ctx, `SELECT seat_row, seat_number FROM tickets WHERE flight_id = $1 ORDER BY seat_row, seat_number`, id)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()
	d.TakenSeats = make([]domain.Seat, 0)
	for seatRows.Next() {
		var s domain.Seat
		if err := seatRows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		d.TakenSeats = append(d.TakenSeats, s)
	}
	return &d, seatRows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&flight.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return err
	}

	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crew (flight_id, crew_id) VALUES ($1, $2)`, flight.ID, crewID); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidReference
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetAirplanes resolves the airplane layout for each given flight, used by
// order validation to check seat bounds. Unknown flight ids are simply
// absent from the result map.
func (r *PGFlightRepository) GetAirplanes(ctx context.Context, flightIDs []int64) (map[int64]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, a.id, a.name, a.seat_rows, a.seats_in_row, a.airplane_type_id
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id = ANY($1)`, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make(map[int64]domain.Airplane, len(flightIDs))
	for rows.Next() {
		var flightID int64
		var a domain.Airplane
		if err := rows.Scan(&flightID, &a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID); err != nil {
			return nil, err
		}
		airplanes[flightID] = a
	}
	return airplanes, rows.Err()
}

// FindOverbooked scans for flights holding more tickets than capacity. Any
// hit is a data-integrity violation: the uniqueness constraint should make
// this impossible.
func (r *PGFlightRepository) FindOverbooked(ctx context.Context) ([]domain.OverbookedFlight, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, a.seat_rows * a.seats_in_row AS capacity, COUNT(t.id) AS sold
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		JOIN tickets t ON t.flight_id = f.id
		GROUP BY f.id, a.seat_rows, a.seats_in_row
		HAVING COUNT(t.id) > a.seat_rows * a.seats_in_row`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overbooked []domain.OverbookedFlight
	for rows.Next() {
		var o domain.OverbookedFlight
		if err := rows.Scan(&o.FlightID, &o.Capacity, &o.Sold); err != nil {
			return nil, err
		}
		overbooked = append(overbooked, o)
	}
	return overbooked, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
