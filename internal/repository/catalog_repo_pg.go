package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository covers the reference data flights and tickets join
// against: airplane types, airplanes, the geographic hierarchy, routes and
// crew.
type CatalogRepository interface {
	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)

	CreateAirplane(ctx context.Context, a *domain.Airplane) error
	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)

	CreateCountry(ctx context.Context, c *domain.Country) error
	ListCountries(ctx context.Context) ([]domain.Country, error)

	CreateCity(ctx context.Context, c *domain.City) error
	ListCities(ctx context.Context) ([]domain.City, error)

	CreateAirport(ctx context.Context, a *domain.Airport) error
	ListAirports(ctx context.Context) ([]domain.Airport, error)

	CreateRoute(ctx context.Context, r *domain.Route) error
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.RouteDetail, error)

	CreateCrew(ctx context.Context, c *domain.Crew) error
	ListCrews(ctx context.Context) ([]domain.Crew, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *PGCatalogRepository) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGCatalogRepository) CreateAirplane(ctx context.Context, a *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, seat_rows, seats_in_row, airplane_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID).Scan(&a.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrInvalidReference
	}
	return err
}

func (r *PGCatalogRepository) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, `SELECT a.id, a.name, a.seat_rows, a.seats_in_row, a.airplane_type_id, apt.name
		FROM airplanes a
		JOIN airplane_types apt ON apt.id = a.airplane_type_id
		ORDER BY a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.TypeName); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGCatalogRepository) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	var a domain.Airplane
	err := r.db.QueryRow(ctx, `SELECT a.id, a.name, a.seat_rows, a.seats_in_row, a.airplane_type_id, apt.name
		FROM airplanes a
		JOIN airplane_types apt ON apt.id = a.airplane_type_id
		WHERE a.id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.TypeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGCatalogRepository) CreateCountry(ctx context.Context, c *domain.Country) error {
	return r.db.QueryRow(ctx, `INSERT INTO countries (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
}

func (r *PGCatalogRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *PGCatalogRepository) CreateCity(ctx context.Context, c *domain.City) error {
	err := r.db.QueryRow(ctx, `INSERT INTO cities (name, country_id) VALUES ($1, $2) RETURNING id`, c.Name, c.CountryID).Scan(&c.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrInvalidReference
	}
	return err
}

func (r *PGCatalogRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.Query(ctx, `SELECT c.id, c.name, c.country_id, co.name
		FROM cities c
		JOIN countries co ON co.id = c.country_id
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID, &c.CountryName); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *PGCatalogRepository) CreateAirport(ctx context.Context, a *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (name, city_id) VALUES ($1, $2) RETURNING id`, a.Name, a.CityID).Scan(&a.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrInvalidReference
	}
	return err
}

func (r *PGCatalogRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT a.id, a.name, a.city_id, c.name, co.name
		FROM airports a
		JOIN cities c ON c.id = a.city_id
		JOIN countries co ON co.id = c.country_id
		ORDER BY a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.CityID, &a.CityName, &a.CountryName); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGCatalogRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_airport_id, destination_airport_id, distance)
		VALUES ($1, $2, $3)
		RETURNING id`, route.SourceAirportID, route.DestinationAirportID, route.Distance).Scan(&route.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrInvalidReference
	}
	return err
}

func (r *PGCatalogRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT r.id, r.source_airport_id, r.destination_airport_id, r.distance, src.name, dst.name
		FROM routes r
		JOIN airports src ON src.id = r.source_airport_id
		JOIN airports dst ON dst.id = r.destination_airport_id
		ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(&route.ID, &route.SourceAirportID, &route.DestinationAirportID, &route.Distance, &route.SourceName, &route.DestinationName); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

func (r *PGCatalogRepository) GetRoute(ctx context.Context, id int64) (*domain.RouteDetail, error) {
	var d domain.RouteDetail
	err := r.db.QueryRow(ctx, `SELECT r.id, r.distance,
			src.id, src.name, sc.name, scc.name,
			dst.id, dst.name, dc.name, dcc.name
		FROM routes r
		JOIN airports src ON src.id = r.source_airport_id
		JOIN cities sc ON sc.id = src.city_id
		JOIN countries scc ON scc.id = sc.country_id
		JOIN airports dst ON dst.id = r.destination_airport_id
		JOIN cities dc ON dc.id = dst.city_id
		JOIN countries dcc ON dcc.id = dc.country_id
		WHERE r.id = $1`, id).Scan(
		&d.ID, &d.Distance,
		&d.Source.ID, &d.Source.Name, &d.Source.CityName, &d.Source.CountryName,
		&d.Destination.ID, &d.Destination.Name, &d.Destination.CityName, &d.Destination.CountryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PGCatalogRepository) CreateCrew(ctx context.Context, c *domain.Crew) error {
	return r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`, c.FirstName, c.LastName).Scan(&c.ID)
}

func (r *PGCatalogRepository) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crews ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
