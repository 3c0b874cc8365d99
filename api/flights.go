package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbook/internal/repository"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Date           string `json:"date"`
	PriceCents     int64  `json:"price_cents"`
	AvailableSeats int    `json:"available_seats"`
}

type updateFlightRequest struct {
	Origin         *string `json:"origin"`
	Destination    *string `json:"destination"`
	Date           *string `json:"date"`
	PriceCents     *int64  `json:"price_cents"`
	AvailableSeats *int    `json:"available_seats"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register wires the public read/search routes and the admin-only write
// routes onto their respective groups.
func (h *FlightHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("", h.list)
	public.GET("/search", h.search)
	public.GET("/:id", h.get)
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		Origin:         req.Origin,
		Destination:    req.Destination,
		Date:           date,
		PriceCents:     req.PriceCents,
		AvailableSeats: req.AvailableSeats,
	})
	if err != nil {
		writeError(c, http.StatusBadRequest, "Failed to create flight", err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Failed to retrieve flights", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) search(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	result, err := h.service.Search(c.Request.Context(), c.Query("origin"), c.Query("destination"), date)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Search failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Flight not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to retrieve flight", err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req updateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	input := flights.UpdateFlightInput{
		Origin:         req.Origin,
		Destination:    req.Destination,
		PriceCents:     req.PriceCents,
		AvailableSeats: req.AvailableSeats,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			writeError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
			return
		}
		input.Date = &date
	}

	flight, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Flight not found", nil)
			return
		}
		writeError(c, http.StatusBadRequest, "Failed to update flight", err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Flight not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to delete flight", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully"})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid id", err)
		return 0, err
	}
	return id, nil
}
