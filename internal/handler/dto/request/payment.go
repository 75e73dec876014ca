package request

import "github.com/google/uuid"

type InitializePaymentRequest struct {
	RentalID uuid.UUID `json:"rental_id" binding:"required"`
}

// WebhookEvent is the envelope the gateway posts to the webhook endpoint.
// Only the event name and reference are read; everything else about the
// charge is re-fetched from the gateway before any state changes.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}
