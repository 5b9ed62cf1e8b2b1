package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/Domenick1991/airportapi/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the reference-data endpoints. These are thin CRUD
// wrappers; the order flow only depends on the rows they maintain.
type CatalogHandler struct {
	service catalog.CatalogUseCase
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type createAirplaneTypeRequest struct {
	Name string `json:"name"`
}

type airplaneResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Type       string `json:"airplane_type"`
	Capacity   int    `json:"capacity"`
}

type createAirplaneRequest struct {
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID int64  `json:"airplane_type_id"`
}

type countryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type createCountryRequest struct {
	Name string `json:"name"`
}

type cityResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type createCityRequest struct {
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}

type createAirportRequest struct {
	Name   string `json:"name"`
	CityID int64  `json:"city_id"`
}

type routeResponse struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

type createRouteRequest struct {
	SourceAirportID      int64 `json:"source_airport_id"`
	DestinationAirportID int64 `json:"destination_airport_id"`
	Distance             int   `json:"distance"`
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type createCrewRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.POST("/airplane-types", h.createAirplaneType)
	router.GET("/airplane-types", h.listAirplaneTypes)

	router.POST("/airplanes", h.createAirplane)
	router.GET("/airplanes", h.listAirplanes)
	router.GET("/airplanes/:id", h.getAirplane)

	router.POST("/countries", h.createCountry)
	router.GET("/countries", h.listCountries)

	router.POST("/cities", h.createCity)
	router.GET("/cities", h.listCities)

	router.POST("/airports", h.createAirport)
	router.GET("/airports", h.listAirports)

	router.POST("/routes", h.createRoute)
	router.GET("/routes", h.listRoutes)
	router.GET("/routes/:id", h.getRoute)

	router.POST("/crews", h.createCrew)
	router.GET("/crews", h.listCrews)
}

func (h *CatalogHandler) createAirplaneType(c *gin.Context) {
	var req createAirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.service.CreateAirplaneType(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneTypeResponse{ID: t.ID, Name: t.Name})
}

func (h *CatalogHandler) listAirplaneTypes(c *gin.Context) {
	types, err := h.service.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]airplaneTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, airplaneTypeResponse{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) createAirplane(c *gin.Context) {
	var req createAirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.service.CreateAirplane(c.Request.Context(), catalog.CreateAirplaneInput{
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirplaneResponse(*a))
}

func (h *CatalogHandler) listAirplanes(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]airplaneResponse, 0, len(airplanes))
	for _, a := range airplanes {
		resp = append(resp, toAirplaneResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getAirplane(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	a, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(*a))
}

func (h *CatalogHandler) createCountry(c *gin.Context) {
	var req createCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	country, err := h.service.CreateCountry(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, countryResponse{ID: country.ID, Name: country.Name})
}

func (h *CatalogHandler) listCountries(c *gin.Context) {
	countries, err := h.service.ListCountries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]countryResponse, 0, len(countries))
	for _, country := range countries {
		resp = append(resp, countryResponse{ID: country.ID, Name: country.Name})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) createCity(c *gin.Context) {
	var req createCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	city, err := h.service.CreateCity(c.Request.Context(), req.Name, req.CountryID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cityResponse{ID: city.ID, Name: city.Name, Country: city.CountryName})
}

func (h *CatalogHandler) listCities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]cityResponse, 0, len(cities))
	for _, city := range cities {
		resp = append(resp, cityResponse{ID: city.ID, Name: city.Name, Country: city.CountryName})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var req createAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	airport, err := h.service.CreateAirport(c.Request.Context(), req.Name, req.CityID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirportResponse(*airport))
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]airportResponse, 0, len(airports))
	for _, airport := range airports {
		resp = append(resp, toAirportResponse(airport))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	route, err := h.service.CreateRoute(c.Request.Context(), catalog.CreateRouteInput{
		SourceAirportID:      req.SourceAirportID,
		DestinationAirportID: req.DestinationAirportID,
		Distance:             req.Distance,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":                     route.ID,
		"source_airport_id":      route.SourceAirportID,
		"destination_airport_id": route.DestinationAirportID,
		"distance":               route.Distance,
	})
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	routes, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]routeResponse, 0, len(routes))
	for _, route := range routes {
		resp = append(resp, routeResponse{
			ID:          route.ID,
			Source:      route.SourceName,
			Destination: route.DestinationName,
			Distance:    route.Distance,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) getRoute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	detail, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routeDetailBody{
		ID:          detail.ID,
		Source:      toAirportResponse(detail.Source),
		Destination: toAirportResponse(detail.Destination),
		Distance:    detail.Distance,
	})
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var req createCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	crew, err := h.service.CreateCrew(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCrewResponse(*crew))
}

func (h *CatalogHandler) listCrews(c *gin.Context) {
	crews, err := h.service.ListCrews(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]crewResponse, 0, len(crews))
	for _, crew := range crews {
		resp = append(resp, toCrewResponse(crew))
	}
	c.JSON(http.StatusOK, resp)
}

func toAirplaneResponse(a domain.Airplane) airplaneResponse {
	return airplaneResponse{
		ID:         a.ID,
		Name:       a.Name,
		Rows:       a.Rows,
		SeatsInRow: a.SeatsInRow,
		Type:       a.TypeName,
		Capacity:   a.Capacity(),
	}
}

func toCrewResponse(c domain.Crew) crewResponse {
	return crewResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
	}
}
