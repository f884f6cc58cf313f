package handlers

import (
	"net/http"
	"strings"
	"time"

	"stayfinder/middleware"
	"stayfinder/models"
	"stayfinder/services/booking"
	"stayfinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: loggerOrNop(logger)}
}

type createBookingRequest struct {
	ListingID       string  `json:"listingId" binding:"required"`
	CheckIn         string  `json:"checkIn" binding:"required"`
	CheckOut        string  `json:"checkOut" binding:"required"`
	NumberOfGuests  int     `json:"numberOfGuests"`
	SpecialRequests string  `json:"specialRequests"`
	TotalPrice      float64 `json:"totalPrice"`
}

type updateStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// optionalDate parses a request date. An empty value yields the zero time.
func optionalDate(value, field string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, utils.InvalidInput("Invalid " + field + " date")
	}
	return t, nil
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	checkIn, err := optionalDate(req.CheckIn, "check-in")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	checkOut, err := optionalDate(req.CheckOut, "check-out")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	b, err := h.svc.CreateBooking(c.Request.Context(), booking.CreateInput{
		ListingID:       req.ListingID,
		GuestID:         middleware.UserID(c),
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		TotalPrice:      req.TotalPrice,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, b)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	view, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, view)
}

func (h *BookingHandler) ListGuestBookings(c *gin.Context) {
	views, err := h.svc.ListBookingsForGuest(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, views)
}

func (h *BookingHandler) ListHostBookings(c *gin.Context) {
	views, err := h.svc.ListBookingsForHost(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, views)
}

func (h *BookingHandler) ListListingBookings(c *gin.Context) {
	views, err := h.svc.ListBookingsForListing(c.Request.Context(), c.Param("listingId"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, views)
}

// UpdateStatus handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	b, err := h.svc.TransitionStatus(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, b)
}

// CancelBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.svc.CancelBooking(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "Booking cancelled successfully", b)
}

// DeleteBooking handles DELETE /api/bookings/:id/permanent.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteBooking(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "Booking deleted successfully", gin.H{"id": id})
}
