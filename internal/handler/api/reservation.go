package api

import (
	"errors"
	"net/http"

	reqdto "table-reserve/internal/handler/dto/request"
	resdto "table-reserve/internal/handler/dto/response"
	"table-reserve/internal/handler/httperr"
	"table-reserve/internal/usecase/commands"
	"table-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	bookingCommands    commands.BookingCommands
	reservationQueries queries.ReservationQueries
}

func NewReservationHandler(
	bookingCommands commands.BookingCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		bookingCommands:    bookingCommands,
		reservationQueries: reservationQueries,
	}
}

// @Summary Create reservation
// @Description Validate a booking form and create a confirmed reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.BookingRequest true "Booking form"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]any
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.BookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	entity, err := h.bookingCommands.Create(c.Request.Context(), req.ToForm())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromEntity(entity))
}

// @Summary List reservations
// @Description List reservations in booking order; filter with ?status=active, search with ?q=
// @Tags reservations
// @Produce json
// @Param status query string false "Filter: active"
// @Param q query string false "Search term (name, phone, email, or date)"
// @Success 200 {object} resdto.ReservationListResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	ctx := c.Request.Context()

	var views []*queries.ReservationView
	switch {
	case c.Query("q") != "":
		views = h.reservationQueries.Search(ctx, c.Query("q"))
	case c.Query("status") == "active":
		views = h.reservationQueries.ListActive(ctx)
	default:
		views = h.reservationQueries.List(ctx)
	}

	stats := h.reservationQueries.Stats(ctx)
	c.JSON(http.StatusOK, resdto.ReservationListResponse{
		Reservations: resdto.FromViews(views),
		Total:        stats.Total,
		Active:       stats.Active,
	})
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	view, err := h.reservationQueries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromView(view))
}

// @Summary Update reservation
// @Description Replace a reservation's booking details; id, createdAt, and status are immutable
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.BookingRequest true "Booking form"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]any
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	var req reqdto.BookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	entity, err := h.bookingCommands.Update(c.Request.Context(), c.Param("id"), req.ToForm())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromEntity(entity))
}

// @Summary Cancel reservation
// @Description Flip a reservation to cancelled; unknown ids are a no-op
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Success 204
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	entity, err := h.bookingCommands.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	if entity == nil {
		// Unknown id: nothing to cancel, nothing changed.
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, resdto.FromEntity(entity))
}

// @Summary List booking slots
// @Description The fixed table of bookable 30-minute time values
// @Tags slots
// @Produce json
// @Success 200 {object} resdto.SlotsResponse
// @Router /slots [get]
func (h *ReservationHandler) ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.SlotsResponse{
		Slots: h.reservationQueries.Slots(),
	})
}

func (h *ReservationHandler) writeCommandError(c *gin.Context, err error) {
	var fieldErrs commands.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", fieldErrs)
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
