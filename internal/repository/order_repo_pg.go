package repository

import (
	"context"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	GetByID(ctx context.Context, id, userID int64) (*domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// Create persists the order and all of its tickets in one transaction.
// The UNIQUE (flight_id, seat_row, seat_number) constraint on tickets is the
// cross-process guarantee against double booking: a violation means another
// order already holds the seat, the whole transaction rolls back and the
// losing seat is reported as domain.SeatTakenError.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		err := tx.QueryRow(ctx, `INSERT INTO tickets (order_id, flight_id, seat_row, seat_number)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, t.OrderID, t.FlightID, t.Row, t.Seat).Scan(&t.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return &domain.SeatTakenError{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
			}
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidReference
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT o.id, o.user_id, o.created_at, t.id, t.flight_id, t.seat_row, t.seat_number
		FROM orders o
		LEFT JOIN tickets t ON t.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC, t.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT o.id, o.user_id, o.created_at, t.id, t.flight_id, t.seat_row, t.seat_number
		FROM orders o
		LEFT JOIN tickets t ON t.order_id = o.id
		WHERE o.id = $1 AND o.user_id = $2
		ORDER BY t.id`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrNotFound
	}
	return &orders[0], nil
}

// scanOrders folds the order/ticket left join into orders with nested
// tickets, preserving row order.
func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var o domain.Order
		var ticketID, flightID *int64
		var row, seat *int
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &ticketID, &flightID, &row, &seat); err != nil {
			return nil, err
		}
		pos, ok := index[o.ID]
		if !ok {
			pos = len(orders)
			index[o.ID] = pos
			o.Tickets = make([]domain.Ticket, 0, 1)
			orders = append(orders, o)
		}
		if ticketID != nil {
			orders[pos].Tickets = append(orders[pos].Tickets, domain.Ticket{
				ID:       *ticketID,
				OrderID:  o.ID,
				FlightID: *flightID,
				Row:      *row,
				Seat:     *seat,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)
