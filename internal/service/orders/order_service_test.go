package orders

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/Domenick1991/airportapi/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter repository.FlightFilter) ([]domain.FlightSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	args := m.Called(ctx, flight, crewIDs)
	return args.Error(0)
}

func (m *MockFlightRepository) GetAirplanes(ctx context.Context, flightIDs []int64) (map[int64]domain.Airplane, error) {
	args := m.Called(ctx, flightIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Airplane), args.Error(1)
}

func (m *MockFlightRepository) FindOverbooked(ctx context.Context) ([]domain.OverbookedFlight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.OverbookedFlight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewOrderService(
		mockOrderRepo,
		mockFlightRepo,
		testLogger(),
		WithCache(mockCache),
		WithEvents(mockProducer, "order-events"),
	)

	ctx := context.Background()
	input := CreateOrderInput{
		UserID: 42,
		Tickets: []domain.TicketRequest{
			{FlightID: 4, Row: 1, Seat: 1},
			{FlightID: 4, Row: 2, Seat: 3},
		},
	}

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mockFlightRepo.On("GetAirplanes", ctx, []int64{4}).
		Return(map[int64]domain.Airplane{4: {ID: 9, Rows: 10, SeatsInRow: 6}}, nil).Once()
	mockOrderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*domain.Order)
			order.ID = 7
			order.CreatedAt = created
			for i := range order.Tickets {
				order.Tickets[i].ID = int64(i + 100)
				order.Tickets[i].OrderID = order.ID
			}
		}).
		Return(nil).Once()
	mockProducer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	order, err := service.CreateOrder(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, int64(42), order.UserID)
	assert.Equal(t, created, order.CreatedAt)
	assert.Len(t, order.Tickets, 2)
	assert.Equal(t, domain.Ticket{ID: 100, OrderID: 7, FlightID: 4, Row: 1, Seat: 1}, order.Tickets[0])
	assert.Equal(t, domain.Ticket{ID: 101, OrderID: 7, FlightID: 4, Row: 2, Seat: 3}, order.Tickets[1])

	mockFlightRepo.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestOrderService_CreateOrder_Empty(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}

	service := NewOrderService(mockOrderRepo, mockFlightRepo, testLogger())

	order, err := service.CreateOrder(context.Background(), CreateOrderInput{UserID: 42})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	mockOrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_SeatValidation(t *testing.T) {
	airplanes := map[int64]domain.Airplane{4: {ID: 9, Rows: 10, SeatsInRow: 6}}

	testCases := []struct {
		name          string
		tickets       []domain.TicketRequest
		expectedField string
		expectedPos   int
		expectedErr   string
	}{
		{
			name:          "row below range",
			tickets:       []domain.TicketRequest{{FlightID: 4, Row: -1, Seat: 1}},
			expectedField: "row",
			expectedPos:   0,
			expectedErr:   "ticket 0: row must be in range [1, 10], got -1",
		},
		{
			name:          "row above range",
			tickets:       []domain.TicketRequest{{FlightID: 4, Row: 11, Seat: 1}},
			expectedField: "row",
			expectedPos:   0,
			expectedErr:   "ticket 0: row must be in range [1, 10], got 11",
		},
		{
			name: "seat out of range in second ticket",
			tickets: []domain.TicketRequest{
				{FlightID: 4, Row: 1, Seat: 1},
				{FlightID: 4, Row: 1, Seat: 7},
			},
			expectedField: "seat",
			expectedPos:   1,
			expectedErr:   "ticket 1: seat must be in range [1, 6], got 7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockOrderRepo := &MockOrderRepository{}
			mockFlightRepo := &MockFlightRepository{}
			service := NewOrderService(mockOrderRepo, mockFlightRepo, testLogger())

			ctx := context.Background()
			mockFlightRepo.On("GetAirplanes", ctx, []int64{4}).Return(airplanes, nil).Once()

			order, err := service.CreateOrder(ctx, CreateOrderInput{UserID: 42, Tickets: tc.tickets})

			assert.Nil(t, order)
			assert.EqualError(t, err, tc.expectedErr)

			var ticketErr *domain.TicketError
			assert.True(t, errors.As(err, &ticketErr))
			assert.Equal(t, tc.expectedPos, ticketErr.Position)

			var rangeErr *domain.SeatRangeError
			assert.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tc.expectedField, rangeErr.Field)

			// Nothing is persisted on validation failure.
			mockOrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_CreateOrder_UnknownFlight(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	service := NewOrderService(mockOrderRepo, mockFlightRepo, testLogger())

	ctx := context.Background()
	mockFlightRepo.On("GetAirplanes", ctx, []int64{99}).
		Return(map[int64]domain.Airplane{}, nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  42,
		Tickets: []domain.TicketRequest{{FlightID: 99, Row: 1, Seat: 1}},
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var ticketErr *domain.TicketError
	assert.True(t, errors.As(err, &ticketErr))
	assert.Equal(t, 0, ticketErr.Position)
	mockOrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_DuplicateSeatInBatch(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	service := NewOrderService(mockOrderRepo, mockFlightRepo, testLogger())

	ctx := context.Background()
	mockFlightRepo.On("GetAirplanes", ctx, []int64{4}).
		Return(map[int64]domain.Airplane{4: {Rows: 10, SeatsInRow: 6}}, nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 42,
		Tickets: []domain.TicketRequest{
			{FlightID: 4, Row: 1, Seat: 1},
			{FlightID: 4, Row: 1, Seat: 1},
		},
	})

	assert.Nil(t, order)

	var dupErr *domain.DuplicateSeatError
	assert.True(t, errors.As(err, &dupErr))
	assert.Equal(t, int64(4), dupErr.FlightID)
	assert.Equal(t, 1, dupErr.Row)
	assert.Equal(t, 1, dupErr.Seat)
	assert.Equal(t, 1, dupErr.Position)

	mockOrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_SeatTaken(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewOrderService(
		mockOrderRepo,
		mockFlightRepo,
		testLogger(),
		WithCache(mockCache),
		WithEvents(mockProducer, "order-events"),
	)

	ctx := context.Background()
	mockFlightRepo.On("GetAirplanes", ctx, []int64{4}).
		Return(map[int64]domain.Airplane{4: {Rows: 10, SeatsInRow: 6}}, nil).Once()
	mockOrderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
		Return(&domain.SeatTakenError{FlightID: 4, Row: 5, Seat: 5}).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  42,
		Tickets: []domain.TicketRequest{{FlightID: 4, Row: 5, Seat: 5}},
	})

	assert.Nil(t, order)

	var takenErr *domain.SeatTakenError
	assert.True(t, errors.As(err, &takenErr))
	assert.Equal(t, int64(4), takenErr.FlightID)
	assert.Equal(t, 5, takenErr.Row)
	assert.Equal(t, 5, takenErr.Seat)

	// No event, no cache invalidation for a failed order.
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockCache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestOrderService_CreateOrder_PublishFailureTolerated(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewOrderService(
		mockOrderRepo,
		mockFlightRepo,
		testLogger(),
		WithCache(mockCache),
		WithEvents(mockProducer, "order-events"),
	)

	ctx := context.Background()
	mockFlightRepo.On("GetAirplanes", ctx, []int64{4}).
		Return(map[int64]domain.Airplane{4: {Rows: 10, SeatsInRow: 6}}, nil).Once()
	mockOrderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  42,
		Tickets: []domain.TicketRequest{{FlightID: 4, Row: 1, Seat: 1}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, order)
	mockProducer.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PublishesToNotificationsTopic(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(
		mockOrderRepo,
		mockFlightRepo,
		testLogger(),
		WithEvents(mockProducer, "order-events"),
		WithNotificationsTopic("order-notifications"),
	)

	ctx := context.Background()
	mockFlightRepo.On("GetAirplanes", ctx, []int64{4}).
		Return(map[int64]domain.Airplane{4: {Rows: 10, SeatsInRow: 6}}, nil).Once()
	mockOrderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	// The worker reads the notifications topic, so the event must land on
	// both topics with the same key.
	mockProducer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "order-notifications", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  42,
		Tickets: []domain.TicketRequest{{FlightID: 4, Row: 1, Seat: 1}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, order)
	mockProducer.AssertExpectations(t)
}

func TestOrderService_Publish_NoNotificationsTopic(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(
		mockOrderRepo,
		mockFlightRepo,
		testLogger(),
		WithEvents(mockProducer, "order-events"),
	)

	ctx := context.Background()
	mockFlightRepo.On("GetAirplanes", ctx, []int64{4}).
		Return(map[int64]domain.Airplane{4: {Rows: 10, SeatsInRow: 6}}, nil).Once()
	mockOrderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  42,
		Tickets: []domain.TicketRequest{{FlightID: 4, Row: 1, Seat: 1}},
	})

	assert.NoError(t, err)
	mockProducer.AssertNotCalled(t, "Publish", ctx, "order-notifications", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_MultipleFlights(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	service := NewOrderService(mockOrderRepo, mockFlightRepo, testLogger())

	ctx := context.Background()
	mockFlightRepo.On("GetAirplanes", ctx, []int64{4, 5}).
		Return(map[int64]domain.Airplane{
			4: {Rows: 10, SeatsInRow: 6},
			5: {Rows: 2, SeatsInRow: 2},
		}, nil).Once()
	mockOrderRepo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	// The same (row, seat) on different flights is not a duplicate.
	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 42,
		Tickets: []domain.TicketRequest{
			{FlightID: 4, Row: 1, Seat: 1},
			{FlightID: 5, Row: 1, Seat: 1},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, order.Tickets, 2)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_ListOrders(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	service := NewOrderService(mockOrderRepo, mockFlightRepo, testLogger())

	ctx := context.Background()
	expected := []domain.Order{
		{ID: 1, UserID: 42, Tickets: []domain.Ticket{{ID: 10, OrderID: 1, FlightID: 4, Row: 1, Seat: 1}}},
	}
	mockOrderRepo.On("ListByUser", ctx, int64(42)).Return(expected, nil).Once()

	orders, err := service.ListOrders(ctx, 42)

	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	mockOrderRepo := &MockOrderRepository{}
	mockFlightRepo := &MockFlightRepository{}
	service := NewOrderService(mockOrderRepo, mockFlightRepo, testLogger())

	ctx := context.Background()
	mockOrderRepo.On("GetByID", ctx, int64(9), int64(42)).Return(nil, domain.ErrNotFound).Once()

	order, err := service.GetOrder(ctx, 9, 42)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
