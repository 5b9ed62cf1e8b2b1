package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/Domenick1991/airportapi/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

// writeError maps core errors onto status codes: validation problems are
// 400, losing a seat race is 409, missing entities are 404, the rest 500.
func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var seatTaken *domain.SeatTakenError
	if errors.As(err, &seatTaken) {
		return http.StatusConflict
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		return http.StatusConflict
	}
	var rangeErr *domain.SeatRangeError
	var dupErr *domain.DuplicateSeatError
	var ticketErr *domain.TicketError
	switch {
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, catalog.ErrValidation),
		errors.As(err, &rangeErr),
		errors.As(err, &dupErr),
		errors.As(err, &ticketErr):
		return http.StatusBadRequest
	}
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
