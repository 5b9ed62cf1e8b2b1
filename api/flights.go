package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/Domenick1991/airportapi/internal/repository"
	"github.com/Domenick1991/airportapi/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightSummaryResponse struct {
	ID               int64  `json:"id"`
	Source           string `json:"source"`
	Destination      string `json:"destination"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	TicketsAvailable int    `json:"tickets_available"`
}

type airportResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type flightDetailResponse struct {
	ID            int64            `json:"id"`
	Route         routeDetailBody  `json:"route"`
	Airplane      airplaneResponse `json:"airplane"`
	DepartureTime string           `json:"departure_time"`
	ArrivalTime   string           `json:"arrival_time"`
	Crew          []string         `json:"crew"`
	TakenSeats    []seatResponse   `json:"taken_seats"`
}

type routeDetailBody struct {
	ID          int64           `json:"id"`
	Source      airportResponse `json:"source"`
	Destination airportResponse `json:"destination"`
	Distance    int             `json:"distance"`
}

type seatResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type createFlightRequest struct {
	RouteID       int64     `json:"route_id"`
	AirplaneID    int64     `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crew_ids"`
}

type flightResponse struct {
	ID            int64  `json:"id"`
	RouteID       int64  `json:"route_id"`
	AirplaneID    int64  `json:"airplane_id"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter, err := parseFlightFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]flightSummaryResponse, 0, len(list))
	for _, f := range list {
		resp = append(resp, flightSummaryResponse{
			ID:               f.ID,
			Source:           f.Source,
			Destination:      f.Destination,
			DepartureTime:    f.DepartureTime.Format(time.RFC3339),
			ArrivalTime:      f.ArrivalTime.Format(time.RFC3339),
			TicketsAvailable: f.TicketsAvailable,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightDetailResponse(detail))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		CrewIDs:       req.CrewIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, flightResponse{
		ID:            flight.ID,
		RouteID:       flight.RouteID,
		AirplaneID:    flight.AirplaneID,
		DepartureTime: flight.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   flight.ArrivalTime.Format(time.RFC3339),
	})
}

func parseFlightFilter(c *gin.Context) (repository.FlightFilter, error) {
	var filter repository.FlightFilter

	idParams := []struct {
		name string
		dst  **int64
	}{
		{"source_airport", &filter.SourceAirportID},
		{"destination_airport", &filter.DestinationAirportID},
		{"source_city", &filter.SourceCityID},
		{"destination_city", &filter.DestinationCityID},
	}
	for _, p := range idParams {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, &queryParamError{param: p.name}
		}
		*p.dst = &id
	}

	if raw := c.Query("departure_after"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, &queryParamError{param: "departure_after"}
		}
		filter.DepartureAfter = &ts
	}
	return filter, nil
}

type queryParamError struct {
	param string
}

func (e *queryParamError) Error() string {
	return "invalid " + e.param + " query parameter"
}

func toFlightDetailResponse(d *domain.FlightDetail) flightDetailResponse {
	resp := flightDetailResponse{
		ID: d.ID,
		Route: routeDetailBody{
			ID:          d.Route.ID,
			Source:      toAirportResponse(d.Route.Source),
			Destination: toAirportResponse(d.Route.Destination),
			Distance:    d.Route.Distance,
		},
		Airplane:      toAirplaneResponse(d.Airplane),
		DepartureTime: d.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   d.ArrivalTime.Format(time.RFC3339),
		Crew:          d.Crew,
		TakenSeats:    make([]seatResponse, 0, len(d.TakenSeats)),
	}
	for _, s := range d.TakenSeats {
		resp.TakenSeats = append(resp.TakenSeats, seatResponse{Row: s.Row, Seat: s.Seat})
	}
	return resp
}

func toAirportResponse(a domain.Airport) airportResponse {
	return airportResponse{ID: a.ID, Name: a.Name, City: a.CityName, Country: a.CountryName}
}
