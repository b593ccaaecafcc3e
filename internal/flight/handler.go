package flight

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// UseCase is what the HTTP layer needs from the service.
type UseCase interface {
	SearchFlights(ctx context.Context, req SearchRequest) (*FlightSearchResponse, error)
	ListPopularRoutes(ctx context.Context) ([]PopularRoute, error)
	ListAirlines(ctx context.Context) ([]Airline, error)
	ListAirports(ctx context.Context) ([]Airport, error)
	AirportsByCity(ctx context.Context, city string) ([]Airport, error)
}

var _ UseCase = (*Service)(nil)

type FlightHandler struct {
	service UseCase
}

func NewFlightHandler(s UseCase) *FlightHandler {
	return &FlightHandler{
		service: s,
	}
}

func (h *FlightHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/healthz", h.HealthHandler)
	router.POST("/v1/flights/search", h.SearchFlightsHandler)
	router.GET("/v1/routes/popular", h.PopularRoutesHandler)
	router.GET("/v1/airlines", h.AirlinesHandler)
	router.GET("/v1/airports", h.AirportsHandler)
}

type AirlinesResponse struct {
	Airlines []Airline `json:"airlines"`
}

type AirportsResponse struct {
	Airports []Airport `json:"airports"`
}

type PopularRoutesResponse struct {
	Routes []PopularRoute `json:"routes"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string    `json:"error"`
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field,omitempty"`
	Details string    `json:"details,omitempty"`
}

// SearchFlightsHandler godoc
// @Summary      Search flights
// @Description  Search one directional leg by city pair, day and passenger count, with optional filters and sort key
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body SearchRequest true "Search criteria"
// @Success      200 {object} FlightSearchResponse
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /v1/flights/search [post]
func (h *FlightHandler) SearchFlightsHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid JSON body",
			Code:    ErrorCodeValidation,
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.SearchFlights(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// PopularRoutesHandler godoc
// @Summary      Popular routes
// @Description  Route aggregates with both endpoint airports, busiest first
// @Tags         routes
// @Produce      json
// @Success      200 {object} PopularRoutesResponse
// @Failure      503 {object} ErrorResponse
// @Router       /v1/routes/popular [get]
func (h *FlightHandler) PopularRoutesHandler(c *gin.Context) {
	routes, err := h.service.ListPopularRoutes(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, PopularRoutesResponse{Routes: routes})
}

// AirlinesHandler godoc
// @Summary      List airlines
// @Tags         reference
// @Produce      json
// @Success      200 {object} AirlinesResponse
// @Failure      503 {object} ErrorResponse
// @Router       /v1/airlines [get]
func (h *FlightHandler) AirlinesHandler(c *gin.Context) {
	airlines, err := h.service.ListAirlines(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, AirlinesResponse{Airlines: airlines})
}

// AirportsHandler godoc
// @Summary      List airports
// @Description  All airports, or only those serving the given city
// @Tags         reference
// @Produce      json
// @Param        city query string false "City name"
// @Success      200 {object} AirportsResponse
// @Failure      503 {object} ErrorResponse
// @Router       /v1/airports [get]
func (h *FlightHandler) AirportsHandler(c *gin.Context) {
	var (
		airports []Airport
		err      error
	)

	if city, ok := c.GetQuery("city"); ok {
		airports, err = h.service.AirportsByCity(c.Request.Context(), city)
	} else {
		airports, err = h.service.ListAirports(c.Request.Context())
	}
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, AirportsResponse{Airports: airports})
}

// HealthHandler godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /healthz [get]
func (h *FlightHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
			Field: appErr.Field,
		})
		return
	}

	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "Flight inventory unavailable",
			Code:  ErrorCodeRepositoryFailure,
		})
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal Server Error",
		Code:    ErrorCodeInternalFailure,
		Details: err.Error(),
	})
}
