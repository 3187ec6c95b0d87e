package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/httpresp"
	"github.com/visabridge/agent-scheduler/internal/models"
	ucBooking "github.com/visabridge/agent-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler is the client-facing surface: browse an agent's services,
// query slots, book, and cancel with the booking reference. No session is
// required.
type PublicHandler struct {
	db          *gorm.DB
	getSlots    *ucBooking.GetSlots
	createUC    *ucBooking.CreateBooking
	cancelByRef *ucBooking.CancelByReference
}

func NewPublicHandler(
	db *gorm.DB,
	getSlots *ucBooking.GetSlots,
	createUC *ucBooking.CreateBooking,
	cancelByRef *ucBooking.CancelByReference,
) *PublicHandler {
	return &PublicHandler{
		db:          db,
		getSlots:    getSlots,
		createUC:    createUC,
		cancelByRef: cancelByRef,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	AgentID     uint   `json:"agent_id" binding:"required"`
	ServiceID   *uint  `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	MeetingType string `json:"meeting_type"`
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	agentID, err := strconv.ParseUint(c.Param("agentID"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_agent_id", "Invalid agent id.")
		return
	}

	var agent models.Agent
	if err := h.db.First(&agent, uint(agentID)).Error; err != nil || !agent.Active {
		httperr.NotFound(c, "agent_not_found", "Agent not found.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("agent_id = ? AND active = true", agent.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agent":    agent,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	agentID, err := strconv.ParseUint(c.Param("agentID"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_agent_id", "Invalid agent id.")
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var agent models.Agent
	if err := h.db.First(&agent, uint(agentID)).Error; err != nil {
		httperr.NotFound(c, "agent_not_found", "Agent not found.")
		return
	}

	date, err := parseDateInAgent(&agent, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.getSlots.Execute(
		c.Request.Context(),
		scheduling.SlotInput{
			AgentID:   agent.ID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "agent_not_found"):
			httperr.NotFound(c, "agent_not_found", "Agent not found.")
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.NotFound(c, "service_not_found", "Service not found.")
		default:
			httperr.Internal(c, "availability_failed", "Could not compute slots.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			AgentID:     req.AgentID,
			ServiceID:   req.ServiceID,
			ClientName:  req.Name,
			ClientEmail: req.Email,
			ClientPhone: req.Phone,
			Date:        req.Date,
			Time:        req.Time,
			MeetingType: req.MeetingType,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, b)
}

////////////////////////////////////////////////////////
// CANCEL BY REFERENCE
////////////////////////////////////////////////////////

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	reference := c.Param("reference")

	b, err := h.cancelByRef.Execute(c.Request.Context(), reference)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Booking can no longer be cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel booking.")
		}
		return
	}

	c.JSON(http.StatusOK, b)
}
