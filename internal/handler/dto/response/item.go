package response

import (
	"time"

	"rentmart/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID                uuid.UUID  `json:"id"`
	VendorID          uuid.UUID  `json:"vendor_id"`
	VendorName        string     `json:"vendor_name"`
	CategoryID        *uuid.UUID `json:"category_id,omitempty"`
	CategoryName      *string    `json:"category_name,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	DailyRateKobo     int64      `json:"daily_rate_kobo"`
	Quantity          int32      `json:"quantity"`
	QuantityAvailable int32      `json:"quantity_available"`
	Images            []string   `json:"images"`
	CreatedAt         time.Time  `json:"created_at"`
}

func FromItemView(view *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:                view.ID,
		VendorID:          view.VendorID,
		VendorName:        view.VendorName,
		CategoryID:        view.CategoryID,
		CategoryName:      view.CategoryName,
		Title:             view.Title,
		Description:       view.Description,
		DailyRateKobo:     view.DailyRateKobo,
		Quantity:          view.Quantity,
		QuantityAvailable: view.QuantityAvailable,
		Images:            view.Images,
		CreatedAt:         view.CreatedAt,
	}
}
