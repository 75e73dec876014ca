package commands

import (
	"context"
	"strings"

	"rentmart/internal/domain/item"
	"rentmart/internal/domain/rental"
	"rentmart/internal/infra"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/usecase/queries"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateItemInput struct {
	CategoryID     *uuid.UUID
	Title          string
	Description    string
	DailyRateNaira float64
	Quantity       int
	Images         []string
}

type UpdateItemInput struct {
	Title          *string
	Description    *string
	DailyRateNaira *float64
	Images         []string
}

type ListingCommands interface {
	// CreateItem publishes a vendor's item. Only vendors and admins may
	// list; the vendor is the acting user.
	CreateItem(ctx context.Context, actor shared.Actor, input CreateItemInput) (*queries.ItemView, error)
	// UpdateItem applies a partial edit to an item owned by the acting
	// vendor. Quantity is deliberately not editable here; availability is
	// owned by the booking flow.
	UpdateItem(ctx context.Context, actor shared.Actor, itemID uuid.UUID, input UpdateItemInput) (*queries.ItemView, error)
}

type listingCommandsImpl struct {
	itemRepo    ItemRepository
	itemQueries queries.ItemQueries
}

func NewListingCommands(itemRepo ItemRepository, itemQueries queries.ItemQueries) ListingCommands {
	return &listingCommandsImpl{
		itemRepo:    itemRepo,
		itemQueries: itemQueries,
	}
}

func (l *listingCommandsImpl) CreateItem(
	ctx context.Context,
	actor shared.Actor,
	input CreateItemInput,
) (*queries.ItemView, error) {
	if !actor.IsVendor() && !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}

	dailyRate, err := rental.NewMoneyFromNaira(input.DailyRateNaira)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	itemEntity, err := item.NewItem(
		actor.ID,
		input.CategoryID,
		input.Title,
		input.Description,
		dailyRate,
		input.Quantity,
		input.Images,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := l.itemRepo.Create(ctx, itemEntity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return l.itemQueries.GetByID(ctx, itemEntity.ID())
}

func (l *listingCommandsImpl) UpdateItem(
	ctx context.Context,
	actor shared.Actor,
	itemID uuid.UUID,
	input UpdateItemInput,
) (*queries.ItemView, error) {
	snapshot, err := l.itemRepo.FindSnapshotByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !actor.IsAdmin() && snapshot.VendorID != actor.ID {
		return nil, errs.ErrForbidden
	}

	patch := ItemPatch{
		Description: input.Description,
		Images:      input.Images,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errs.Mark(item.ErrEmptyTitle, errs.ErrDomainValidation)
		}
		if len(title) > item.MaxTitleLength {
			return nil, errs.Mark(item.ErrTitleTooLong, errs.ErrDomainValidation)
		}
		patch.Title = &title
	}

	if input.DailyRateNaira != nil {
		dailyRate, rateErr := rental.NewMoneyFromNaira(*input.DailyRateNaira)
		if rateErr != nil {
			return nil, errs.Mark(rateErr, errs.ErrDomainValidation)
		}
		kobo := dailyRate.Kobo()
		patch.DailyRateKobo = &kobo
	}

	if err := l.itemRepo.Update(ctx, itemID, patch); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return l.itemQueries.GetByID(ctx, itemID)
}
