package domain

// Route is an ordered (source, destination) airport pair. Source may equal
// destination; only the distance is checked on create.
type Route struct {
	ID                   int64
	SourceAirportID      int64
	DestinationAirportID int64
	Distance             int
	// Airport names populated by list queries.
	SourceName      string
	DestinationName string
}

// RouteDetail carries the fully resolved endpoints for a flight detail view.
type RouteDetail struct {
	ID          int64
	Source      Airport
	Destination Airport
	Distance    int
}
