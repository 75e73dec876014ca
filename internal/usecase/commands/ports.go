package commands

import (
	"context"

	"rentmart/internal/domain/item"
	"rentmart/internal/domain/payment"
	"rentmart/internal/domain/rental"
	"rentmart/internal/domain/user"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
)

// ItemSnapshot is the write-side item view the booking and payment flows
// read. It deliberately carries no availability mutation methods.
type ItemSnapshot struct {
	ID                uuid.UUID
	VendorID          uuid.UUID
	Title             string
	DailyRate         rental.Money
	Quantity          int
	QuantityAvailable int
}

type RentalRepository interface {
	Create(ctx context.Context, tx shared.DBTX, r *rental.Rental) error
	FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error)
	// UpdateStatusIf applies a compare-and-transition: the row changes only
	// if it is still in the expected current status. Returns whether a row
	// was updated.
	UpdateStatusIf(ctx context.Context, tx shared.DBTX, id uuid.UUID, from, to rental.Status) (bool, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, t *payment.Transaction) error
	FindByReference(ctx context.Context, reference string) (*payment.Transaction, error)
	FindPendingByRentalID(ctx context.Context, rentalID uuid.UUID) (*payment.Transaction, error)
	AttachCheckoutSession(ctx context.Context, id uuid.UUID, reference, authorizationURL string) error
	AuthorizationURL(ctx context.Context, id uuid.UUID) (string, error)
	// SettleIf transitions the transaction to a terminal status only if it
	// is still pending. Returns whether a row was updated.
	SettleIf(ctx context.Context, tx shared.DBTX, id uuid.UUID, to payment.Status) (bool, error)
}

// ItemPatch carries a partial update; nil fields keep their stored value.
type ItemPatch struct {
	Title         *string
	Description   *string
	DailyRateKobo *int64
	Images        []string
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) error
	Update(ctx context.Context, id uuid.UUID, patch ItemPatch) error
	FindSnapshotByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
	// ReserveQuantity decrements availability only when enough units remain
	// (conditional decrement, safe under concurrent bookings). Returns
	// whether the decrement happened.
	ReserveQuantity(ctx context.Context, tx shared.DBTX, id uuid.UUID, quantity int) (bool, error)
	ReleaseQuantity(ctx context.Context, tx shared.DBTX, id uuid.UUID, quantity int) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type CheckoutRequest struct {
	Email     string
	Amount    rental.Money
	Reference string
	Metadata  map[string]any
}

type CheckoutSession struct {
	AuthorizationURL string
	Reference        string
}

type GatewayVerification struct {
	Success    bool
	AmountKobo int64
	Currency   string
	RawStatus  string
}

// PaymentGateway is the port onto the external payment processor.
// Implementations must convert amounts to minor units and must surface
// transport failures as errs.ErrGatewayUnavailable, distinguishable from a
// verified "payment failed" business outcome.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	VerifyTransaction(ctx context.Context, reference string) (*GatewayVerification, error)
	VerifyWebhookSignature(signature string, body []byte) bool
}
