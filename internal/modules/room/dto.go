package room

type CreateRoomRequest struct {
	RoomNumber    string   `json:"room_number" binding:"required"`
	RoomType      string   `json:"room_type" binding:"required"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	PricePerNight float64  `json:"price_per_night" binding:"gte=0"`
	Status        string   `json:"status"`
	Features      []string `json:"features"`
	Notes         string   `json:"notes"`
}

type UpdateRoomRequest struct {
	RoomNumber    *string   `json:"room_number"`
	RoomType      *string   `json:"room_type"`
	Capacity      *int      `json:"capacity"`
	PricePerNight *float64  `json:"price_per_night"`
	Status        *string   `json:"status"`
	Features      *[]string `json:"features"`
	Notes         *string   `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateBlockRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}
