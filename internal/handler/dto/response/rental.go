package response

import (
	"time"

	"rentmart/internal/usecase/queries"

	"github.com/google/uuid"
)

type RentalResponse struct {
	ID             uuid.UUID `json:"id"`
	ItemID         uuid.UUID `json:"item_id"`
	ItemTitle      string    `json:"item_title"`
	VendorID       uuid.UUID `json:"vendor_id"`
	VendorName     string    `json:"vendor_name"`
	RenterID       uuid.UUID `json:"renter_id"`
	RenterName     string    `json:"renter_name"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Quantity       int32     `json:"quantity"`
	TotalPriceKobo int64     `json:"total_price_kobo"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromRentalView(view *queries.RentalView) *RentalResponse {
	return &RentalResponse{
		ID:             view.ID,
		ItemID:         view.ItemID,
		ItemTitle:      view.ItemTitle,
		VendorID:       view.VendorID,
		VendorName:     view.VendorName,
		RenterID:       view.RenterID,
		RenterName:     view.RenterName,
		StartDate:      view.StartDate.Format(time.DateOnly),
		EndDate:        view.EndDate.Format(time.DateOnly),
		Quantity:       view.Quantity,
		TotalPriceKobo: view.TotalPriceKobo,
		Status:         view.Status,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
}

type RentalListResponse struct {
	ID             uuid.UUID `json:"id"`
	ItemID         uuid.UUID `json:"item_id"`
	ItemTitle      string    `json:"item_title"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Quantity       int32     `json:"quantity"`
	TotalPriceKobo int64     `json:"total_price_kobo"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromRentalListItem(item *queries.RentalListItem) *RentalListResponse {
	return &RentalListResponse{
		ID:             item.ID,
		ItemID:         item.ItemID,
		ItemTitle:      item.ItemTitle,
		StartDate:      item.StartDate.Format(time.DateOnly),
		EndDate:        item.EndDate.Format(time.DateOnly),
		Quantity:       item.Quantity,
		TotalPriceKobo: item.TotalPriceKobo,
		Status:         item.Status,
		CreatedAt:      item.CreatedAt,
	}
}
