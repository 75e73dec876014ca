package queries

import (
	"time"

	"github.com/google/uuid"
)

type RentalView struct {
	ID             uuid.UUID  `json:"id"`
	ItemID         uuid.UUID  `json:"item_id"`
	ItemTitle      string     `json:"item_title"`
	VendorID       uuid.UUID  `json:"vendor_id"`
	VendorName     string     `json:"vendor_name"`
	RenterID       uuid.UUID  `json:"renter_id"`
	RenterName     string     `json:"renter_name"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	Quantity       int32      `json:"quantity"`
	TotalPriceKobo int64      `json:"total_price_kobo"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type RentalListItem struct {
	ID             uuid.UUID `json:"id"`
	ItemID         uuid.UUID `json:"item_id"`
	ItemTitle      string    `json:"item_title"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Quantity       int32     `json:"quantity"`
	TotalPriceKobo int64     `json:"total_price_kobo"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type TransactionView struct {
	ID         uuid.UUID `json:"id"`
	RentalID   uuid.UUID `json:"rental_id"`
	AmountKobo int64     `json:"amount_kobo"`
	Gateway    string    `json:"gateway"`
	Reference  *string   `json:"reference,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ItemView struct {
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

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ItemFilter struct {
	CategoryID *uuid.UUID
	VendorID   *uuid.UUID
}
