package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/response"
	"github.com/stemsi/roomgrid-backend/internal/schedule"
	"github.com/stemsi/roomgrid-backend/internal/service"
	"github.com/stemsi/roomgrid-backend/internal/validator"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GetRoomSchedule godoc
// POST /api/v1/schedule
func (h *ScheduleHandler) GetRoomSchedule(c *gin.Context) {
	var req model.RoomScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rs, err := h.scheduleService.RoomSchedule(c.Request.Context(), req)
	if err != nil {
		failWithError(c, err)
		return
	}

	skipped := rs.Projection.Skipped
	if skipped == nil {
		skipped = []schedule.SkippedMeeting{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"term":       rs.Term,
		"building":   rs.Building,
		"room":       rs.Room,
		"code":       rs.Code,
		"status":     rs.Status,
		"available":  rs.Projection.Available(),
		"courses":    rs.Projection.Courses,
		"occupied":   rs.Projection.Occupied,
		"time_slots": schedule.TimeSlots(),
		"days":       rs.Projection.Grid.Columns(),
		"skipped":    skipped,
	})
}
