package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"lendhub/internal/domain/booking"
	reqdto "lendhub/internal/handler/dto/request"
	resdto "lendhub/internal/handler/dto/response"
	"lendhub/internal/handler/middleware"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Request a booking of an available item
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user id"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, commands.ErrItemNotFound), errors.Is(err, commands.ErrOwnItemBooking):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, commands.ErrItemUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item is not available"})
		case errors.Is(err, commands.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking period"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Approve or reject booking
// @Description Decide a waiting booking; only the item owner may decide
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user id"
// @Param bookingId path int true "Booking ID"
// @Param approved query bool true "Approve (true) or reject (false)"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [patch]
func (h *BookingHandler) SetApproval(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid approved parameter"})
		return
	}

	view, err := h.bookingCommands.SetApproval(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, commands.ErrAlreadyDecided):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is already decided"})
		case errors.Is(err, commands.ErrNotItemOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the item owner may decide a booking"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking visible to the caller (the booker or the item owner)
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user id"
// @Param bookingId path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), userID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List caller's bookings
// @Description List bookings made by the caller, filtered by state, newest first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookerBookings(c *gin.Context) {
	h.listBookings(c, h.bookingQueries.ListForBooker)
}

// @Summary List bookings of caller's items
// @Description List bookings of items the caller owns, filtered by state, newest first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller user id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/owner [get]
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	h.listBookings(c, h.bookingQueries.ListForOwner)
}

func (h *BookingHandler) listBookings(
	c *gin.Context,
	list func(ctx context.Context, userID int64, state booking.State) ([]queries.BookingView, error),
) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	stateStr := c.DefaultQuery("state", string(booking.StateAll))
	state, ok := booking.ParseState(stateStr)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown state: " + stateStr})
		return
	}

	views, err := list(c.Request.Context(), userID, state)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, queries.ErrNoOwnedItems):
			c.JSON(http.StatusNotFound, gin.H{"error": "User owns no items"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}
