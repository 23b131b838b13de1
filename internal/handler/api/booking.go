package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "bookit/internal/handler/dto/request"
	resdto "bookit/internal/handler/dto/response"
	"bookit/internal/handler/httperr"
	"bookit/internal/usecase/commands"
	"bookit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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
// @Description Reserve spots on a slot and record the booking atomically
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Optional idempotency key for safe retries"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), req.ToInput(), idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking request", nil)
		case errors.Is(err, commands.ErrSlotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
		case errors.Is(err, commands.ErrInsufficientCapacity):
			httperr.AbortWithError(c, http.StatusConflict, err, "Not enough spots available", nil)
		case errors.Is(err, commands.ErrDuplicateRequest):
			httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate booking request", nil)
		case errors.Is(err, commands.ErrPriceMismatch):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Final price does not match server quote", nil)
		case errors.Is(err, commands.ErrTransientConflict):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Booking conflicted with concurrent requests, please retry", nil)
		case errors.Is(err, commands.ErrStoreUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Booking store temporarily unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(result.Booking))
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil && id <= 0 {
		err = errors.New("booking id must be positive")
	}
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return nil, nil
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return nil, errors.New("invalid idempotency key format")
	}

	return &key, nil
}
