package domain

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID             int64
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64
	// TypeName is populated by list/detail queries that join airplane_types.
	TypeName string
}

// Capacity is derived from the layout, never stored.
func (a *Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

// ValidateSeat checks a (row, seat) pair against the airplane layout.
// It is pure and usable standalone; errors carry the valid bound so the
// caller can surface a field-level message.
func (a *Airplane) ValidateSeat(row, seat int) error {
	if row < 1 || row > a.Rows {
		return &SeatRangeError{Field: "row", Value: row, Max: a.Rows}
	}
	if seat < 1 || seat > a.SeatsInRow {
		return &SeatRangeError{Field: "seat", Value: seat, Max: a.SeatsInRow}
	}
	return nil
}
