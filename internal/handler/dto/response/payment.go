package response

import (
	"time"

	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"

	"github.com/google/uuid"
)

// InitializePaymentResponse keeps the gateway-style success envelope the
// checkout frontend consumes.
type InitializePaymentResponse struct {
	Success bool                  `json:"success"`
	Data    InitializePaymentData `json:"data"`
}

type InitializePaymentData struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

func FromInitializePaymentResult(result *commands.InitializePaymentResult) *InitializePaymentResponse {
	return &InitializePaymentResponse{
		Success: true,
		Data: InitializePaymentData{
			AuthorizationURL: result.AuthorizationURL,
			Reference:        result.Reference,
		},
	}
}

type TransactionResponse struct {
	ID         uuid.UUID `json:"id"`
	RentalID   uuid.UUID `json:"rental_id"`
	AmountKobo int64     `json:"amount_kobo"`
	Gateway    string    `json:"gateway"`
	Reference  *string   `json:"reference,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromTransactionView(view *queries.TransactionView) *TransactionResponse {
	return &TransactionResponse{
		ID:         view.ID,
		RentalID:   view.RentalID,
		AmountKobo: view.AmountKobo,
		Gateway:    view.Gateway,
		Reference:  view.Reference,
		Status:     view.Status,
		CreatedAt:  view.CreatedAt,
		UpdatedAt:  view.UpdatedAt,
	}
}

type VerifyPaymentResponse struct {
	Outcome     string               `json:"outcome"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}
