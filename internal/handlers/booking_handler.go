package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/httpresp"
	"github.com/visabridge/agent-scheduler/internal/middleware"
	ucBooking "github.com/visabridge/agent-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC     *ucBooking.CreateBooking
	cancelUC     *ucBooking.CancelBooking
	confirmUC    *ucBooking.ConfirmBooking
	completeUC   *ucBooking.CompleteBooking
	noShowUC     *ucBooking.MarkNoShow
	rescheduleUC *ucBooking.RescheduleBooking
	listByDate   *ucBooking.ListBookingsByDate
	listByMonth  *ucBooking.ListBookingsByMonth
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	confirmUC *ucBooking.ConfirmBooking,
	completeUC *ucBooking.CompleteBooking,
	noShowUC *ucBooking.MarkNoShow,
	rescheduleUC *ucBooking.RescheduleBooking,
	listByDate *ucBooking.ListBookingsByDate,
	listByMonth *ucBooking.ListBookingsByMonth,
) *BookingHandler {
	return &BookingHandler{
		createUC:     createUC,
		cancelUC:     cancelUC,
		confirmUC:    confirmUC,
		completeUC:   completeUC,
		noShowUC:     noShowUC,
		rescheduleUC: rescheduleUC,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID   *uint  `json:"service_id"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required,email"`
	ClientPhone string `json:"client_phone" binding:"required"`
	MeetingType string `json:"meeting_type"`
	Notes       string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_taken") || httperr.IsExclusionConflict(err):
		httperr.Conflict(c, "slot_taken", "This slot was just taken, please choose another.")
	case httperr.IsBusiness(err, "agent_not_found"):
		httperr.NotFound(c, "agent_not_found", "Agent not found.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Service not found.")
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "This time is in the past or too soon.")
	case httperr.IsBusiness(err, "missing_client_info"):
		httperr.BadRequest(c, "missing_client_info", "Client name, email and phone are required.")
	case httperr.IsBusiness(err, "invalid_meeting_type"):
		httperr.BadRequest(c, "invalid_meeting_type", "Unknown meeting type.")
	case httperr.IsBusiness(err, "outside_availability"):
		httperr.BadRequest(c, "outside_availability", "Outside the agent's available hours.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Booking is not in a valid state for this action.")
	default:
		httperr.Internal(c, "booking_failed", "Could not process booking.")
	}
}

// ======================================================
// CREATE (agent books on behalf of a client)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			AgentID:     agentID,
			ServiceID:   req.ServiceID,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			ClientPhone: req.ClientPhone,
			Date:        req.Date,
			Time:        req.Time,
			MeetingType: req.MeetingType,
			Notes:       req.Notes,
			ActorID:     &userID,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDateInAgent(nil, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	bookings, err := h.listByDate.Execute(c.Request.Context(), agentID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	bookings, err := h.listByMonth.Execute(c.Request.Context(), agentID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), agentID, userID, uint(bookingID))
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.confirmUC.Execute(c.Request.Context(), agentID, userID, uint(bookingID))
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), agentID, userID, uint(bookingID))
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.noShowUC.Execute(c.Request.Context(), agentID, userID, uint(bookingID))
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *BookingHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.rescheduleUC.Execute(
		c.Request.Context(),
		agentID,
		userID,
		uint(bookingID),
		req.Date,
		req.Time,
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
