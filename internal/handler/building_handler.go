package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/response"
	"github.com/stemsi/roomgrid-backend/internal/service"
	"github.com/stemsi/roomgrid-backend/internal/validator"
)

// buildingView is a building as listed by the API.
type buildingView struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	DisplayName string `json:"display_name"`
}

func toBuildingViews(buildings []model.Building) []buildingView {
	out := make([]buildingView, 0, len(buildings))
	for _, b := range buildings {
		out = append(out, buildingView{Code: b.Code, Description: b.Description, DisplayName: b.DisplayName()})
	}
	return out
}

type BuildingHandler struct {
	catalogService *service.CatalogService
	roomService    *service.RoomService
}

func NewBuildingHandler(catalogService *service.CatalogService, roomService *service.RoomService) *BuildingHandler {
	return &BuildingHandler{catalogService: catalogService, roomService: roomService}
}

// ListBuildings godoc
// GET /api/v1/buildings?with_rooms=true&term=2025FA
//
// With with_rooms only buildings that have rooms in the term are listed;
// the term defaults to the active one.
func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	var q model.BuildingListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !q.WithRooms {
		response.Success(c, http.StatusOK, gin.H{"buildings": toBuildingViews(h.catalogService.Buildings())})
		return
	}

	ctx := c.Request.Context()
	termCode := q.Term
	if termCode == "" {
		active, err := h.catalogService.ActiveTerm(ctx)
		if err != nil {
			failWithError(c, err)
			return
		}
		termCode = active.Code
	}

	res, err := h.roomService.MergedInventory(ctx, termCode)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"term":      termCode,
		"buildings": toBuildingViews(h.catalogService.BuildingsWithRooms(res.Inventory)),
	})
}
