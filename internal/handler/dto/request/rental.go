package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateRentalRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type UpdateRentalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
