package commands

import (
	"context"
	"errors"
	"log/slog"

	"rentmart/internal/domain/payment"
	"rentmart/internal/domain/rental"
	"rentmart/internal/infra"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
)

type InitializePaymentResult struct {
	AuthorizationURL string
	Reference        string
}

// SettlementOutcome describes what a settlement attempt did. The webhook
// receiver acknowledges all of them; they differ only for observability.
type SettlementOutcome string

const (
	// SettlementAccepted: payment verified, rental accepted.
	SettlementAccepted SettlementOutcome = "accepted"
	// SettlementRejected: the event claimed success but gateway
	// verification disagreed; nothing was mutated.
	SettlementRejected SettlementOutcome = "rejected"
	// SettlementConflict: the transaction was no longer pending
	// (duplicate or out-of-order delivery); nothing was mutated.
	SettlementConflict SettlementOutcome = "conflict"
	// SettlementUnmatched: no transaction carries this reference.
	SettlementUnmatched SettlementOutcome = "unmatched"
)

type PaymentCommands interface {
	// InitializePayment creates (or reuses) the pending transaction for a
	// rental and opens a hosted checkout session. A gateway failure leaves
	// the transaction pending and retryable.
	InitializePayment(ctx context.Context, actor shared.Actor, rentalID uuid.UUID) (*InitializePaymentResult, error)
	// SettleTransaction is the single settlement path shared by the
	// asynchronous webhook and the synchronous verify-on-return flow.
	// It verifies with the gateway before mutating anything, and only a
	// still-pending transaction can transition.
	SettleTransaction(ctx context.Context, reference string) (SettlementOutcome, error)
}

type paymentCommandsImpl struct {
	rentalRepo      RentalRepository
	transactionRepo TransactionRepository
	itemRepo        ItemRepository
	userRepo        UserRepository
	gateway         PaymentGateway
	txRunner        shared.TxRunner
}

func NewPaymentCommands(
	rentalRepo RentalRepository,
	transactionRepo TransactionRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	gateway PaymentGateway,
	txRunner shared.TxRunner,
) PaymentCommands {
	return &paymentCommandsImpl{
		rentalRepo:      rentalRepo,
		transactionRepo: transactionRepo,
		itemRepo:        itemRepo,
		userRepo:        userRepo,
		gateway:         gateway,
		txRunner:        txRunner,
	}
}

func (p *paymentCommandsImpl) InitializePayment(
	ctx context.Context,
	actor shared.Actor,
	rentalID uuid.UUID,
) (*InitializePaymentResult, error) {
	rentalEntity, err := p.rentalRepo.FindByID(ctx, rentalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRentalNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !actor.IsAdmin() && actor.ID != rentalEntity.RenterID() {
		return nil, errs.ErrNotRentalParty
	}

	if !rentalEntity.IsPayable() {
		return nil, errs.ErrRentalNotPayable
	}

	transaction, err := p.resolvePendingTransaction(ctx, rentalEntity)
	if err != nil {
		return nil, err
	}

	// A pending transaction that already opened a checkout session is
	// replayed as-is instead of creating an orphaned sibling row.
	if transaction.HasCheckoutSession() {
		authorizationURL, urlErr := p.transactionRepo.AuthorizationURL(ctx, transaction.ID())
		if urlErr != nil {
			return nil, errs.Mark(urlErr, errs.ErrDatabaseOperationFailed)
		}
		return &InitializePaymentResult{
			AuthorizationURL: authorizationURL,
			Reference:        *transaction.Reference(),
		}, nil
	}

	renter, err := p.userRepo.FindByID(ctx, rentalEntity.RenterID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	session, err := p.gateway.CreateCheckoutSession(ctx, CheckoutRequest{
		Email:     renter.Email(),
		Amount:    transaction.Amount(),
		Reference: transaction.ID().String(),
		Metadata: map[string]any{
			"rental_id":      rentalEntity.ID().String(),
			"transaction_id": transaction.ID().String(),
			"quantity":       rentalEntity.Quantity(),
		},
	})
	if err != nil {
		// The transaction stays pending without a checkout URL; the caller
		// is told to retry or abandon.
		return nil, err
	}

	if err := p.transactionRepo.AttachCheckoutSession(ctx, transaction.ID(), session.Reference, session.AuthorizationURL); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &InitializePaymentResult{
		AuthorizationURL: session.AuthorizationURL,
		Reference:        session.Reference,
	}, nil
}

// resolvePendingTransaction reuses the rental's pending attempt when one
// exists; a new row is only created when no pending attempt remains.
func (p *paymentCommandsImpl) resolvePendingTransaction(
	ctx context.Context,
	rentalEntity *rental.Rental,
) (*payment.Transaction, error) {
	existing, err := p.transactionRepo.FindPendingByRentalID(ctx, rentalEntity.ID())
	if err == nil {
		return existing, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	transaction, err := payment.NewTransaction(rentalEntity.ID(), rentalEntity.TotalPrice(), payment.GatewayPaystack)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := p.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return transaction, nil
}

func (p *paymentCommandsImpl) SettleTransaction(ctx context.Context, reference string) (SettlementOutcome, error) {
	// Trust-but-verify: the gateway's verification endpoint is the only
	// input that may drive a state change, never the event payload.
	verification, err := p.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return "", err
	}

	transaction, err := p.transactionRepo.FindByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("settlement event for unknown reference", "reference", reference)
			return SettlementUnmatched, nil
		}
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if transaction.Status() != payment.StatusPending {
		// Duplicate or out-of-order delivery; expected, not exceptional.
		return SettlementConflict, nil
	}

	if !verification.Success {
		slog.Warn("settlement event claimed success but verification disagreed",
			"reference", reference,
			"gateway_status", verification.RawStatus)
		return SettlementRejected, nil
	}

	err = p.txRunner.Within(ctx, func(ctx context.Context, tx shared.DBTX) error {
		settled, settleErr := p.transactionRepo.SettleIf(ctx, tx, transaction.ID(), payment.StatusSuccess)
		if settleErr != nil {
			return errs.Mark(settleErr, errs.ErrDatabaseOperationFailed)
		}
		if !settled {
			return errs.ErrSettlementConflict
		}

		accepted, acceptErr := p.rentalRepo.UpdateStatusIf(ctx, tx, transaction.RentalID(),
			rental.StatusPending, rental.StatusAccepted)
		if acceptErr != nil {
			return errs.Mark(acceptErr, errs.ErrDatabaseOperationFailed)
		}
		if !accepted {
			// Payment succeeded for a rental no longer pending (e.g.
			// cancelled while the renter was on the checkout page). Keep
			// the transaction settled and flag for manual follow-up.
			slog.Warn("settled payment for rental not in pending status",
				"rental_id", transaction.RentalID(),
				"reference", reference)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrSettlementConflict) {
			return SettlementConflict, nil
		}
		return "", err
	}

	return SettlementAccepted, nil
}
