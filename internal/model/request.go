package model

// RoomScheduleRequest is the payload for projecting one room's week.
type RoomScheduleRequest struct {
	Term     string `json:"term" binding:"required,max=32"`
	Building string `json:"building" binding:"required,max=32"`
	Room     string `json:"room" binding:"required,max=32"`
}

// RoomListQuery holds query options for room listings.
type RoomListQuery struct {
	Merged bool `form:"merged"`
}

// BuildingListQuery holds query options for the building listing.
type BuildingListQuery struct {
	Term      string `form:"term" binding:"omitempty,max=32"`
	WithRooms bool   `form:"with_rooms"`
}

// IngestQuery holds options for the CSV preview endpoint.
type IngestQuery struct {
	Delimiter string `form:"delimiter" binding:"omitempty,len=1"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
}
