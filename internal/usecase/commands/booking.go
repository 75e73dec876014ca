package commands

import (
	"context"
	"errors"
	"time"

	"rentmart/internal/domain/rental"
	"rentmart/internal/infra"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/usecase/queries"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	ItemID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Quantity  int
}

type BookingCommands interface {
	// CreateBooking resolves the item, snapshots the price and inserts a
	// pending rental. It never touches the payment gateway; payment
	// initiation is a separate, independently retryable step.
	CreateBooking(ctx context.Context, actor shared.Actor, input CreateBookingInput) (*queries.RentalView, error)
	UpdateRentalStatus(ctx context.Context, actor shared.Actor, rentalID uuid.UUID, next rental.Status) (*queries.RentalView, error)
}

type bookingCommandsImpl struct {
	rentalRepo    RentalRepository
	itemRepo      ItemRepository
	rentalFactory *rental.Factory
	rentalQueries queries.RentalQueries
	txRunner      shared.TxRunner
}

func NewBookingCommands(
	rentalRepo RentalRepository,
	itemRepo ItemRepository,
	rentalFactory *rental.Factory,
	rentalQueries queries.RentalQueries,
	txRunner shared.TxRunner,
) BookingCommands {
	return &bookingCommandsImpl{
		rentalRepo:    rentalRepo,
		itemRepo:      itemRepo,
		rentalFactory: rentalFactory,
		rentalQueries: rentalQueries,
		txRunner:      txRunner,
	}
}

func (b *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	actor shared.Actor,
	input CreateBookingInput,
) (*queries.RentalView, error) {
	snapshot, err := b.itemRepo.FindSnapshotByID(ctx, input.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	period, err := rental.NewDatePeriod(input.StartDate, input.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	rentalEntity, err := b.rentalFactory.CreateRental(
		rental.ItemSpec{
			ID:                snapshot.ID,
			VendorID:          snapshot.VendorID,
			DailyRate:         snapshot.DailyRate,
			QuantityAvailable: snapshot.QuantityAvailable,
		},
		actor.ID,
		period,
		input.Quantity,
	)
	if err != nil {
		if errors.Is(err, rental.ErrQuantityNotAvailable) {
			return nil, errs.ErrItemUnavailable
		}
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	// Reserve availability and insert the rental atomically: either both
	// happen or neither does.
	err = b.txRunner.Within(ctx, func(ctx context.Context, tx shared.DBTX) error {
		reserved, reserveErr := b.itemRepo.ReserveQuantity(ctx, tx, rentalEntity.ItemID(), rentalEntity.Quantity())
		if reserveErr != nil {
			return errs.Mark(reserveErr, errs.ErrDatabaseOperationFailed)
		}
		if !reserved {
			// Another booking took the remaining units since the snapshot read.
			return errs.ErrItemUnavailable
		}

		return b.rentalRepo.Create(ctx, tx, rentalEntity)
	})
	if err != nil {
		if errors.Is(err, errs.ErrItemUnavailable) {
			return nil, errs.ErrItemUnavailable
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return b.rentalQueries.GetByIDSystem(ctx, rentalEntity.ID())
}

func (b *bookingCommandsImpl) UpdateRentalStatus(
	ctx context.Context,
	actor shared.Actor,
	rentalID uuid.UUID,
	next rental.Status,
) (*queries.RentalView, error) {
	rentalEntity, err := b.rentalRepo.FindByID(ctx, rentalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRentalNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := b.authorizeTransition(actor, rentalEntity, next); err != nil {
		return nil, err
	}

	current := rentalEntity.Status()
	if err := rentalEntity.TransitionTo(next); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTransition)
	}

	err = b.txRunner.Within(ctx, func(ctx context.Context, tx shared.DBTX) error {
		updated, updateErr := b.rentalRepo.UpdateStatusIf(ctx, tx, rentalEntity.ID(), current, next)
		if updateErr != nil {
			return errs.Mark(updateErr, errs.ErrDatabaseOperationFailed)
		}
		if !updated {
			// The rental changed under us; the caller should re-read and retry.
			return errs.ErrInvalidTransition
		}

		// A terminal rental holds no units.
		if next.IsTerminal() {
			return b.itemRepo.ReleaseQuantity(ctx, tx, rentalEntity.ItemID(), rentalEntity.Quantity())
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return nil, errs.ErrInvalidTransition
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return b.rentalQueries.GetByIDSystem(ctx, rentalID)
}

// Vendors and admins drive the lifecycle; renters may only cancel their
// own not-yet-ongoing rental.
func (b *bookingCommandsImpl) authorizeTransition(actor shared.Actor, r *rental.Rental, next rental.Status) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.ID == r.VendorID() {
		return nil
	}
	if actor.ID == r.RenterID() && next == rental.StatusCancelled {
		return nil
	}
	return errs.ErrForbidden
}
