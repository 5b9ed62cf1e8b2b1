package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/Domenick1991/airportapi/internal/repository"
)

// ErrValidation wraps field-level problems with reference-data input.
var ErrValidation = errors.New("validation failed")

// CatalogUseCase exposes CRUD over the reference data flights and tickets
// join against. Deletion is intentionally absent: reference rows are never
// removed while flights or tickets point at them.
type CatalogUseCase interface {
	CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)

	CreateAirplane(ctx context.Context, input CreateAirplaneInput) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)

	CreateCountry(ctx context.Context, name string) (*domain.Country, error)
	ListCountries(ctx context.Context) ([]domain.Country, error)

	CreateCity(ctx context.Context, name string, countryID int64) (*domain.City, error)
	ListCities(ctx context.Context) ([]domain.City, error)

	CreateAirport(ctx context.Context, name string, cityID int64) (*domain.Airport, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)

	CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error)
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.RouteDetail, error)

	CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error)
	ListCrews(ctx context.Context) ([]domain.Crew, error)
}

type CreateAirplaneInput struct {
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64
}

type CreateRouteInput struct {
	SourceAirportID      int64
	DestinationAirportID int64
	Distance             int
}

type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	t := &domain.AirplaneType{Name: name}
	if err := s.repo.CreateAirplaneType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return s.repo.ListAirplaneTypes(ctx)
}

func (s *CatalogService) CreateAirplane(ctx context.Context, input CreateAirplaneInput) (*domain.Airplane, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Rows <= 0 {
		return nil, fmt.Errorf("%w: rows must be positive", ErrValidation)
	}
	if input.SeatsInRow <= 0 {
		return nil, fmt.Errorf("%w: seats_in_row must be positive", ErrValidation)
	}
	a := &domain.Airplane{
		Name:           input.Name,
		Rows:           input.Rows,
		SeatsInRow:     input.SeatsInRow,
		AirplaneTypeID: input.AirplaneTypeID,
	}
	if err := s.repo.CreateAirplane(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CatalogService) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return s.repo.ListAirplanes(ctx)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.repo.GetAirplane(ctx, id)
}

func (s *CatalogService) CreateCountry(ctx context.Context, name string) (*domain.Country, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	c := &domain.Country{Name: name}
	if err := s.repo.CreateCountry(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.repo.ListCountries(ctx)
}

func (s *CatalogService) CreateCity(ctx context.Context, name string, countryID int64) (*domain.City, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	c := &domain.City{Name: name, CountryID: countryID}
	if err := s.repo.CreateCity(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCities(ctx context.Context) ([]domain.City, error) {
	return s.repo.ListCities(ctx)
}

func (s *CatalogService) CreateAirport(ctx context.Context, name string, cityID int64) (*domain.Airport, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	a := &domain.Airport{Name: name, CityID: cityID}
	if err := s.repo.CreateAirport(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CatalogService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return s.repo.ListAirports(ctx)
}

// CreateRoute permits source == destination; only the distance is checked.
func (s *CatalogService) CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error) {
	if input.Distance <= 0 {
		return nil, fmt.Errorf("%w: distance must be positive", ErrValidation)
	}
	r := &domain.Route{
		SourceAirportID:      input.SourceAirportID,
		DestinationAirportID: input.DestinationAirportID,
		Distance:             input.Distance,
	}
	if err := s.repo.CreateRoute(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *CatalogService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return s.repo.ListRoutes(ctx)
}

func (s *CatalogService) GetRoute(ctx context.Context, id int64) (*domain.RouteDetail, error) {
	return s.repo.GetRoute(ctx, id)
}

func (s *CatalogService) CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error) {
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first_name and last_name are required", ErrValidation)
	}
	c := &domain.Crew{FirstName: firstName, LastName: lastName}
	if err := s.repo.CreateCrew(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	return s.repo.ListCrews(ctx)
}

var _ CatalogUseCase = (*CatalogService)(nil)
