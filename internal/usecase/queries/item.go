package queries

import (
	"context"

	"rentmart/internal/infra"
	"rentmart/internal/pkg/errs"

	"github.com/google/uuid"
)

type ItemReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	List(ctx context.Context, filter ItemFilter) ([]*ItemView, error)
}

type ItemQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	List(ctx context.Context, filter ItemFilter) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	store ItemReadStore
}

func NewItemQueries(store ItemReadStore) ItemQueries {
	return &itemQueriesImpl{store: store}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	return view, nil
}

func (q *itemQueriesImpl) List(ctx context.Context, filter ItemFilter) ([]*ItemView, error) {
	items, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list items")
	}
	return items, nil
}
