package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/gym_scheduler/internal/api/response"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

// SlotsHandler предпросмотр сетки смены
type SlotsHandler struct{}

// NewSlotsHandler создаёт SlotsHandler
func NewSlotsHandler() *SlotsHandler {
	return &SlotsHandler{}
}

// Preview возвращает времена начала занятий для смены
// POST /api/v1/slots/preview
func (h *SlotsHandler) Preview(c *gin.Context) {
	var req SlotPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	start, err := weekconfig.ParseClockStrict(req.ShiftStart)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeBadRequest, "invalid shift_start", err.Error())
		return
	}

	end, err := weekconfig.ParseClockStrict(req.ShiftEnd)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeBadRequest, "invalid shift_end", err.Error())
		return
	}

	if req.Duration < weekconfig.MinClassDuration || req.Duration > weekconfig.MaxClassDuration {
		response.BadRequest(c, fmt.Sprintf("duration must be between %d and %d minutes",
			weekconfig.MinClassDuration, weekconfig.MaxClassDuration))
		return
	}

	slots := weekconfig.ComputeSlotLabels(start, end, req.Duration)
	if slots == nil {
		slots = []string{}
	}

	response.OK(c, SlotPreviewResponse{Slots: slots, Count: len(slots)})
}
