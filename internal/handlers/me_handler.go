package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/middleware"
	"github.com/visabridge/agent-scheduler/internal/models"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Agent").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name               *string `json:"name"`
	Phone              *string `json:"phone"`
	Bio                *string `json:"bio"`
	Timezone           *string `json:"timezone"`
	DefaultDurationMin *int    `json:"default_duration_min"`
	MinAdvanceMinutes  *int    `json:"min_advance_minutes"`
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	var agent models.Agent
	if err := h.db.First(&agent, agentID).Error; err != nil {
		httperr.NotFound(c, "agent_not_found", "Agent not found.")
		return
	}

	c.JSON(http.StatusOK, agent)
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	agentID := c.MustGet(middleware.ContextAgentID).(uint)

	var agent models.Agent
	if err := h.db.First(&agent, agentID).Error; err != nil {
		httperr.NotFound(c, "agent_not_found", "Agent not found.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Phone != nil {
		agent.Phone = *req.Phone
	}
	if req.Bio != nil {
		agent.Bio = *req.Bio
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		agent.Timezone = *req.Timezone
	}
	if req.DefaultDurationMin != nil {
		if *req.DefaultDurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be positive.")
			return
		}
		agent.DefaultDurationMin = *req.DefaultDurationMin
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance cannot be negative.")
			return
		}
		agent.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&agent).Error; err != nil {
		httperr.Internal(c, "failed_to_update_agent", "Could not update profile.")
		return
	}

	c.JSON(http.StatusOK, agent)
}
