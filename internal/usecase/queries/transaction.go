package queries

import (
	"context"

	"rentmart/internal/infra"
	"rentmart/internal/pkg/errs"
)

type TransactionReadStore interface {
	FindByReference(ctx context.Context, reference string) (*TransactionView, error)
}

type TransactionQueries interface {
	GetByReference(ctx context.Context, reference string) (*TransactionView, error)
}

type transactionQueriesImpl struct {
	store TransactionReadStore
}

func NewTransactionQueries(store TransactionReadStore) TransactionQueries {
	return &transactionQueriesImpl{store: store}
}

func (q *transactionQueriesImpl) GetByReference(ctx context.Context, reference string) (*TransactionView, error) {
	view, err := q.store.FindByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, errs.Wrap(err, "failed to find transaction")
	}

	return view, nil
}
