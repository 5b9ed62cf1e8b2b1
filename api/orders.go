package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/airportapi/internal/domain"
	"github.com/Domenick1991/airportapi/internal/service/orders"
	"github.com/gin-gonic/gin"
)

// userIDHeader carries the authenticated user id resolved by the gateway
// in front of this service; auth itself is outside this backend.
const userIDHeader = "X-User-ID"

type OrderHandler struct {
	service orders.OrderUseCase
}

type createOrderRequest struct {
	Tickets []ticketRequest `json:"tickets"`
}

type ticketRequest struct {
	FlightID int64 `json:"flight_id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	CreatedAt string           `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

type ticketResponse struct {
	ID       int64 `json:"id"`
	FlightID int64 `json:"flight_id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *OrderHandler) create(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tickets := make([]domain.TicketRequest, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		tickets = append(tickets, domain.TicketRequest{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}

	order, err := h.service.CreateOrder(c.Request.Context(), orders.CreateOrderInput{
		UserID:  userID,
		Tickets: tickets,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) list(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	list, err := h.service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toOrderResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) get(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func userIDFrom(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.GetHeader(userIDHeader), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid " + userIDHeader + " header"})
		return 0, false
	}
	return userID, true
}

func toOrderResponse(order *domain.Order) orderResponse {
	resp := orderResponse{
		ID:        order.ID,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
		Tickets:   make([]ticketResponse, 0, len(order.Tickets)),
	}
	for _, t := range order.Tickets {
		resp.Tickets = append(resp.Tickets, ticketResponse{
			ID:       t.ID,
			FlightID: t.FlightID,
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}
	return resp
}
