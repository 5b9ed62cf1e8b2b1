package domain

import "time"

// Order is the transaction envelope for one or more tickets. It exclusively
// owns its tickets; deleting an order cascades to them.
type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID       int64
	OrderID  int64
	FlightID int64
	Row      int
	Seat     int
}

// TicketRequest is one seat ask inside an order batch.
type TicketRequest struct {
	FlightID int64
	Row      int
	Seat     int
}
