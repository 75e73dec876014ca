package queries

import (
	"context"

	"rentmart/internal/infra"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
)

type RentalReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
	FindByRenterID(ctx context.Context, renterID uuid.UUID) ([]*RentalListItem, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*RentalListItem, error)
}

type RentalQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*RentalView, error)
	// GetByIDSystem skips visibility checks; for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*RentalView, error)
	ListByRenter(ctx context.Context, actor shared.Actor) ([]*RentalListItem, error)
	ListByVendor(ctx context.Context, actor shared.Actor) ([]*RentalListItem, error)
}

type rentalQueriesImpl struct {
	store RentalReadStore
}

func NewRentalQueries(store RentalReadStore) RentalQueries {
	return &rentalQueriesImpl{store: store}
}

func (q *rentalQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*RentalView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}

	// Renters see their own rentals, vendors the rentals of their items.
	if !actor.IsAdmin() && view.RenterID != actor.ID && view.VendorID != actor.ID {
		return nil, errs.ErrNotRentalParty
	}

	return view, nil
}

func (q *rentalQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*RentalView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRentalNotFound
		}
		return nil, errs.Wrap(err, "failed to find rental")
	}

	return view, nil
}

func (q *rentalQueriesImpl) ListByRenter(ctx context.Context, actor shared.Actor) ([]*RentalListItem, error) {
	items, err := q.store.FindByRenterID(ctx, actor.ID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list renter rentals")
	}
	return items, nil
}

func (q *rentalQueriesImpl) ListByVendor(ctx context.Context, actor shared.Actor) ([]*RentalListItem, error) {
	items, err := q.store.FindByVendorID(ctx, actor.ID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list vendor rentals")
	}
	return items, nil
}
