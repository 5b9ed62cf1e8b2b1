package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyOrder is returned when an order is submitted without tickets.
var ErrEmptyOrder = errors.New("order must contain at least one ticket")

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidReference is returned when a create refers to an entity that
// does not exist (foreign key violation in the store).
var ErrInvalidReference = errors.New("referenced entity does not exist")

// ErrAlreadyExists is returned when a create violates a name uniqueness rule.
var ErrAlreadyExists = errors.New("already exists")

// SeatRangeError reports a row or seat outside the airplane layout.
// Field is "row" or "seat"; Max is the inclusive upper bound.
type SeatRangeError struct {
	Field string
	Value int
	Max   int
}

func (e *SeatRangeError) Error() string {
	return fmt.Sprintf("%s must be in range [1, %d], got %d", e.Field, e.Max, e.Value)
}

// TicketError wraps a validation failure with the position of the
// offending ticket in the submitted batch.
type TicketError struct {
	Position int
	Err      error
}

func (e *TicketError) Error() string {
	return fmt.Sprintf("ticket %d: %v", e.Position, e.Err)
}

func (e *TicketError) Unwrap() error { return e.Err }

// DuplicateSeatError reports the same (flight, row, seat) requested twice
// within one batch, independent of what the store holds.
type DuplicateSeatError struct {
	FlightID int64
	Row      int
	Seat     int
	Position int
}

func (e *DuplicateSeatError) Error() string {
	return fmt.Sprintf("duplicate seat in batch: flight %d row %d seat %d", e.FlightID, e.Row, e.Seat)
}

// SeatTakenError reports a seat already sold by another order. This is the
// expected outcome of losing a concurrent booking race, not a bug.
type SeatTakenError struct {
	FlightID int64
	Row      int
	Seat     int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat already taken: flight %d row %d seat %d", e.FlightID, e.Row, e.Seat)
}
