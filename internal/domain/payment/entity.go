package payment

import (
	"errors"
	"time"

	"rentmart/internal/domain/rental"

	"github.com/google/uuid"
)

const GatewayPaystack = "paystack"

var (
	ErrInvalidStatus     = errors.New("invalid transaction status")
	ErrAlreadySettled    = errors.New("transaction already settled")
	ErrNonPositiveAmount = errors.New("transaction amount must be positive")
	ErrUnknownGateway    = errors.New("unknown payment gateway")
)

// Transaction is one payment attempt against a rental. Many attempts may
// reference the same rental over retries; each attempt points to exactly
// one rental.
type Transaction struct {
	id        uuid.UUID
	rentalID  uuid.UUID
	amount    rental.Money
	gateway   string
	reference *string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewTransaction(rentalID uuid.UUID, amount rental.Money, gateway string) (*Transaction, error) {
	if amount.IsZero() {
		return nil, ErrNonPositiveAmount
	}
	if gateway != GatewayPaystack {
		return nil, ErrUnknownGateway
	}

	return &Transaction{
		id:       uuid.New(),
		rentalID: rentalID,
		amount:   amount,
		gateway:  gateway,
		status:   StatusPending,
	}, nil
}

func ReconstructTransaction(
	id, rentalID uuid.UUID,
	amount rental.Money,
	gateway string,
	reference *string,
	status Status,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:        id,
		rentalID:  rentalID,
		amount:    amount,
		gateway:   gateway,
		reference: reference,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// AttachReference records the gateway's own identifier once the checkout
// session has been created.
func (t *Transaction) AttachReference(reference string) error {
	if t.status.IsTerminal() {
		return ErrAlreadySettled
	}
	t.reference = &reference
	return nil
}

// Settle moves a pending transaction to its terminal status. Settling a
// transaction that already reached a terminal status is an error; callers
// treat it as a duplicate-delivery conflict.
func (t *Transaction) Settle(next Status) error {
	if !next.IsTerminal() {
		return ErrInvalidStatus
	}
	if t.status != StatusPending {
		return ErrAlreadySettled
	}
	t.status = next
	return nil
}

func (t *Transaction) HasCheckoutSession() bool {
	return t.reference != nil
}

func (t *Transaction) ID() uuid.UUID { return t.id }
func (t *Transaction) RentalID() uuid.UUID { return t.rentalID }
func (t *Transaction) Amount() rental.Money { return t.amount }
func (t *Transaction) Gateway() string { return t.gateway }
func (t *Transaction) Reference() *string { return t.reference }
func (t *Transaction) Status() Status { return t.status }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }
