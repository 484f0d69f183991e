package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/restobook/restaurant-backend/internal/entity"
	"github.com/restobook/restaurant-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// UpdateStatusRequest представляет запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// filterDateLayouts перечисляет принимаемые форматы границ фильтра.
var filterDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

func parseFilterDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range filterDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// GetBookings возвращает бронирования с необязательной фильтрацией по
// статусу и диапазону дат. Нечитаемая граница диапазона — это 400,
// а не молча проигнорированный фильтр.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	filter := &entity.BookingFilter{
		Status: c.Query("status"),
	}

	if from := c.Query("from"); from != "" {
		t, err := parseFilterDate(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid 'from' date"})
			return
		}
		filter.From = &t
	}

	if to := c.Query("to"); to != "" {
		t, err := parseFilterDate(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid 'to' date"})
			return
		}
		filter.To = &t
	}

	bookings, err := h.bookingService.GetBookings(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CreateBooking создает бронирование. Эндпоинт намеренно публичный:
// гости бронируют сами, персонал модерирует.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Validation error",
				"errors":  vErr.Fields,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// UpdateStatus заменяет статус бронирования на любой из допустимых.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidBookingStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":  fmt.Sprintf("Invalid status value. Allowed values: %s, %s, %s", entity.BookingStatusPending, entity.BookingStatusApproved, entity.BookingStatusRejected),
				"received": req.Status,
			})
		case errors.Is(err, entity.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking ID"})
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), id); err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
