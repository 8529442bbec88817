package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/response"
	"github.com/stemsi/roomgrid-backend/internal/rooms"
	"github.com/stemsi/roomgrid-backend/internal/service"
	"github.com/stemsi/roomgrid-backend/internal/validator"
)

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// GetInventory godoc
// GET /api/v1/terms/:term/rooms?merged=true
func (h *RoomHandler) GetInventory(c *gin.Context) {
	var q model.RoomListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()
	term := c.Param("term")

	var (
		res *rooms.Resolution
		err error
	)
	if q.Merged {
		res, err = h.roomService.MergedInventory(ctx, term)
	} else {
		res, err = h.roomService.Inventory(ctx, term)
	}
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"term":      term,
		"merged":    q.Merged,
		"inventory": res.Inventory,
		"stats":     res.Stats,
	})
}

// GetBuildingRooms godoc
// GET /api/v1/terms/:term/buildings/:code/rooms?merged=true
func (h *RoomHandler) GetBuildingRooms(c *gin.Context) {
	var q model.RoomListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	building, list, err := h.roomService.Rooms(c.Request.Context(), c.Param("term"), c.Param("code"), q.Merged)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"building": building,
		"rooms":    list,
	})
}
