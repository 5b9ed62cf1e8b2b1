package orders

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/Domenick1991/airportapi/internal/kafka"
	"github.com/Domenick1991/airportapi/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	GetOrder(ctx context.Context, id, userID int64) (*domain.Order, error)
}

// Cache is the slice of the flights cache the order flow needs: selling a
// seat changes availability, so the cached list must be dropped.
type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	ordersTopic        string
	notificationsTopic string
	log                *logrus.Logger
}

type CreateOrderInput struct {
	UserID  int64
	Tickets []domain.TicketRequest
}

type OrderServiceOption func(*OrderService)

func WithEvents(producer Producer, topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.producer = producer
		s.ordersTopic = topic
	}
}

// WithNotificationsTopic mirrors every order event onto the topic the
// notifications worker consumes.
func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func WithCache(cache Cache) OrderServiceOption {
	return func(s *OrderService) {
		s.cache = cache
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	log *logrus.Logger,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:  orders,
		flights: flights,
		log:     log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateOrder creates an order and all of its tickets, or nothing.
//
// The in-process checks (seat bounds, intra-batch duplicates) exist to give
// fast field-level errors; the correctness guarantee under concurrent
// submissions is the uniqueness constraint enforced inside the repository
// transaction, which surfaces as domain.SeatTakenError.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Tickets) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	flightIDs := make([]int64, 0, len(input.Tickets))
	seen := make(map[int64]struct{}, len(input.Tickets))
	for _, req := range input.Tickets {
		if _, ok := seen[req.FlightID]; !ok {
			seen[req.FlightID] = struct{}{}
			flightIDs = append(flightIDs, req.FlightID)
		}
	}

	airplanes, err := s.flights.GetAirplanes(ctx, flightIDs)
	if err != nil {
		return nil, err
	}

	for i, req := range input.Tickets {
		airplane, ok := airplanes[req.FlightID]
		if !ok {
			return nil, &domain.TicketError{Position: i, Err: fmt.Errorf("flight %d: %w", req.FlightID, domain.ErrNotFound)}
		}
		if err := airplane.ValidateSeat(req.Row, req.Seat); err != nil {
			return nil, &domain.TicketError{Position: i, Err: err}
		}
	}

	// Duplicates within one batch would race each other inside the insert
	// loop, so they are rejected before touching the store.
	requested := make(map[domain.TicketRequest]struct{}, len(input.Tickets))
	for i, req := range input.Tickets {
		if _, ok := requested[req]; ok {
			return nil, &domain.DuplicateSeatError{FlightID: req.FlightID, Row: req.Row, Seat: req.Seat, Position: i}
		}
		requested[req] = struct{}{}
	}

	order := &domain.Order{
		UserID:  input.UserID,
		Tickets: make([]domain.Ticket, len(input.Tickets)),
	}
	for i, req := range input.Tickets {
		order.Tickets[i] = domain.Ticket{FlightID: req.FlightID, Row: req.Row, Seat: req.Seat}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "order_created", order); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
	}
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.WithError(err).Warn("failed to invalidate flights cache")
		}
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, id, userID int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id, userID)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) error {
	if s.producer == nil || s.ordersTopic == "" {
		return nil
	}
	event := kafka.OrderEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Tickets:   make([]kafka.EventTicket, 0, len(order.Tickets)),
		CreatedAt: order.CreatedAt,
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.EventTicket{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}
	if err := s.producer.Publish(ctx, s.ordersTopic, event.EventID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, event.EventID, event)
	}
	return nil
}

var _ OrderUseCase = (*OrderService)(nil)
