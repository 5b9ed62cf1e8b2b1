package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/Domenick1991/airportapi/internal/repository"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	List(ctx context.Context, filter repository.FlightFilter) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
}

// FlightCache caches the unfiltered flight list only; filtered queries
// always hit the store.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.FlightSummary, error)
	SetFlights(ctx context.Context, flights []domain.FlightSummary) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	log   *logrus.Logger
}

// CreateFlightInput carries the parsed flight attributes. The time window
// is stored as given; inverted windows are not rejected.
type CreateFlightInput struct {
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache, log *logrus.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context, filter repository.FlightFilter) ([]domain.FlightSummary, error) {
	cacheable := filter.Empty() && s.cache != nil
	if cacheable {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	flights = s.sanitizeAvailability(flights)

	if cacheable {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

// sanitizeAvailability reports any negative availability as a
// data-integrity violation and clamps the exposed value to zero. The
// violation itself is never masked: it means the uniqueness constraint was
// bypassed and must be alerted on.
func (s *FlightService) sanitizeAvailability(flights []domain.FlightSummary) []domain.FlightSummary {
	for i := range flights {
		if flights[i].TicketsAvailable < 0 {
			s.log.WithFields(logrus.Fields{
				"flight_id":         flights[i].ID,
				"tickets_available": flights[i].TicketsAvailable,
			}).Error("data integrity violation: negative seat availability")
			flights[i].TicketsAvailable = 0
		}
	}
	return flights
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	flight := &domain.Flight{
		RouteID:       input.RouteID,
		AirplaneID:    input.AirplaneID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if err := s.repo.Create(ctx, flight, input.CrewIDs); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

var _ FlightUseCase = (*FlightService)(nil)
