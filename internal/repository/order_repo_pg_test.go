package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewOrderRepository(pool)
	assert.NotNil(t, repo)
}

func TestPGErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "tickets_flight_id_seat_row_seat_number_key"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(errors.New("plain")))

	// wrapped pg errors still classify
	wrapped := fmt.Errorf("insert ticket: %w", unique)
	assert.True(t, isUniqueViolation(wrapped))
}
