package request

import "github.com/google/uuid"

type CreateItemRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	DailyRateNaira float64    `json:"daily_rate_naira" binding:"required,gt=0"`
	Quantity       int        `json:"quantity" binding:"required,min=1"`
	Images         []string   `json:"images"`
}

// UpdateItemRequest is a partial edit; absent fields stay unchanged.
type UpdateItemRequest struct {
	Title          *string  `json:"title" binding:"omitempty,min=1"`
	Description    *string  `json:"description"`
	DailyRateNaira *float64 `json:"daily_rate_naira" binding:"omitempty,gt=0"`
	Images         []string `json:"images"`
}
