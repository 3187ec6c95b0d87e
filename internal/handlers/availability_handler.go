package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/middleware"
	ucAvailability "github.com/visabridge/agent-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	getWeek *ucAvailability.GetWeek
	setWeek *ucAvailability.SetWeek
}

func NewAvailabilityHandler(
	getWeek *ucAvailability.GetWeek,
	setWeek *ucAvailability.SetWeek,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		getWeek: getWeek,
		setWeek: setWeek,
	}
}

type UpdateAvailabilityRequest struct {
	ServiceID   uint                     `json:"service_id" binding:"required"`
	WeeklyHours []scheduling.DayTemplate `json:"weekly_hours" binding:"required"`
}

// Get is public: clients see the weekly template before picking a date.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	agentID, err := strconv.ParseUint(c.Param("agentID"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_agent_id", "Invalid agent id.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	week, err := h.getWeek.Execute(c.Request.Context(), uint(agentID), uint(serviceID))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "agent_not_found"):
			httperr.NotFound(c, "agent_not_found", "Agent not found.")
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.NotFound(c, "service_not_found", "Service not found.")
		default:
			httperr.Internal(c, "availability_failed", "Could not load availability.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekly_hours": week})
}

// Update replaces the full weekly template. Only the agent themselves may
// touch it.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	authAgentID := c.MustGet(middleware.ContextAgentID).(uint)

	agentID, err := strconv.ParseUint(c.Param("agentID"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_agent_id", "Invalid agent id.")
		return
	}

	if uint(agentID) != authAgentID {
		httperr.Forbidden(c, "not_your_availability", "You can only edit your own availability.")
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := h.setWeek.Execute(c.Request.Context(), uint(agentID), req.ServiceID, req.WeeklyHours); err != nil {
		switch {
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.NotFound(c, "service_not_found", "Service not found.")
		case httperr.IsBusiness(err, "incomplete_week"),
			httperr.IsBusiness(err, "invalid_weekday_set"),
			httperr.IsBusiness(err, "invalid_time_format"),
			httperr.IsBusiness(err, "empty_interval"),
			httperr.IsBusiness(err, "overlapping_intervals"),
			httperr.IsBusiness(err, "unavailable_day_has_intervals"):
			httperr.BadRequest(c, err.Error(), "Invalid weekly template.")
		default:
			httperr.Internal(c, "failed_to_save_availability", "Could not save availability.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
