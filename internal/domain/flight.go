package domain

import "time"

// Flight binds an airplane and a route to a time window. The seat universe
// of a flight is its airplane's rows x seats_in_row grid. Arrival before
// departure is not rejected.
type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
}

// FlightSummary is one row of the flight list: route endpoints plus the
// number of seats still sellable, computed as a per-flight aggregate at
// query time.
type FlightSummary struct {
	ID               int64
	Source           string
	Destination      string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	TicketsAvailable int
}

// Seat is a taken (row, seat) coordinate on a flight.
type Seat struct {
	Row  int
	Seat int
}

// FlightDetail is the full view of one flight, including the taken seats a
// client needs to render a seatmap.
type FlightDetail struct {
	ID            int64
	Route         RouteDetail
	Airplane      Airplane
	DepartureTime time.Time
	ArrivalTime   time.Time
	Crew          []string
	TakenSeats    []Seat
}

// OverbookedFlight reports a flight whose sold tickets exceed capacity.
// Its existence means the uniqueness constraint was bypassed somewhere and
// must be alerted on.
type OverbookedFlight struct {
	FlightID int64
	Capacity int
	Sold     int
}
