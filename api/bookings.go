package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightbook/internal/repository"
	"github.com/Domenick1991/flightbook/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID int64 `json:"flight_id"`
	Seats    int   `json:"seats"`
}

type updateBookingRequest struct {
	Status string `json:"status"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register wires the routes for authenticated users and the admin-only
// management routes onto their respective groups.
func (h *BookingHandler) Register(authed, admin *gin.RouterGroup) {
	authed.POST("", h.create)
	authed.GET("/user/:id", h.listByUser)
	admin.GET("", h.list)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "No token provided", nil)
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), booking.CreateBookingInput{
		UserID:   identity.UserID,
		FlightID: req.FlightID,
		Seats:    req.Seats,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(c, http.StatusNotFound, "Flight not found", nil)
		case errors.Is(err, repository.ErrInsufficientSeats):
			writeError(c, http.StatusBadRequest, "Not enough seats available", nil)
		default:
			writeError(c, http.StatusBadRequest, "Failed to create booking", err)
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) list(c *gin.Context) {
	result, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Failed to retrieve bookings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) listByUser(c *gin.Context) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "No token provided", nil)
		return
	}

	userID, err := parseID(c)
	if err != nil {
		return
	}
	// A user can only read their own bookings; admins can read anyone's.
	if !identity.IsAdmin() && identity.UserID != userID {
		writeError(c, http.StatusForbidden, "Access denied", nil)
		return
	}

	result, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Failed to retrieve user bookings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Booking not found", nil)
			return
		}
		writeError(c, http.StatusBadRequest, "Failed to update booking", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Booking not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to delete booking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
