package repository

import (
	"context"

	"rentmart/internal/domain/payment"
	"rentmart/internal/domain/rental"
	"rentmart/internal/infra"
	"rentmart/internal/pkg/pgconv"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

var _ commands.TransactionRepository = (*TransactionRepository)(nil)

const transactionColumns = `id, rental_id, amount_kobo, gateway, reference, status, created_at, updated_at`

func (r *TransactionRepository) Create(ctx context.Context, t *payment.Transaction) error {
	const query = `
		INSERT INTO transactions (id, rental_id, amount_kobo, gateway, status)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(t.ID()),
		pgconv.UUIDToPgtype(t.RentalID()),
		t.Amount().Kobo(),
		t.Gateway(),
		t.Status().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			// The partial unique index allows one pending attempt per rental.
			return infra.WrapRepoErr("pending transaction already exists for rental", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to insert transaction", err)
	}
	return nil
}

func (r *TransactionRepository) FindByReference(ctx context.Context, reference string) (*payment.Transaction, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference = $1`

	return r.scanTransaction(ctx, query, reference)
}

func (r *TransactionRepository) FindPendingByRentalID(ctx context.Context, rentalID uuid.UUID) (*payment.Transaction, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE rental_id = $1 AND status = 'pending'`

	return r.scanTransaction(ctx, query, pgconv.UUIDToPgtype(rentalID))
}

func (r *TransactionRepository) AttachCheckoutSession(ctx context.Context, id uuid.UUID, reference, authorizationURL string) error {
	const query = `
		UPDATE transactions
		SET reference = $2, authorization_url = $3, updated_at = now()
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, pgconv.UUIDToPgtype(id), reference, authorizationURL)
	if err != nil {
		return infra.WrapRepoErr("failed to attach checkout session", err)
	}
	return nil
}

func (r *TransactionRepository) AuthorizationURL(ctx context.Context, id uuid.UUID) (string, error) {
	const query = `SELECT authorization_url FROM transactions WHERE id = $1`

	var url pgtype.Text
	if err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(&url); err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to load authorization url", err)
	}
	if !url.Valid {
		return "", infra.WrapRepoErr("transaction has no checkout session", nil, infra.KindNotFound)
	}
	return url.String, nil
}

// SettleIf moves a still-pending transaction to a terminal status. A
// duplicate settlement updates zero rows and reports false.
func (r *TransactionRepository) SettleIf(ctx context.Context, tx shared.DBTX, id uuid.UUID, to payment.Status) (bool, error) {
	const query = `
		UPDATE transactions
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'`

	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(id), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to settle transaction", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TransactionRepository) scanTransaction(ctx context.Context, query string, arg any) (*payment.Transaction, error) {
	var (
		id, rentalID         pgtype.UUID
		amountKobo           int64
		gateway              string
		reference            pgtype.Text
		status               string
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&id, &rentalID, &amountKobo, &gateway, &reference, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction", err)
	}

	amount, err := rental.NewMoney(amountKobo)
	if err != nil {
		return nil, infra.WrapRepoErr("stored transaction has invalid amount", err)
	}
	parsedStatus, err := payment.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored transaction has invalid status", err)
	}

	return payment.ReconstructTransaction(
		uuid.UUID(id.Bytes),
		uuid.UUID(rentalID.Bytes),
		amount,
		gateway,
		pgconv.StringPtrFromPgtype(reference),
		parsedStatus,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// TransactionReadStore serves transaction views for the API.
type TransactionReadStore struct {
	pool *pgxpool.Pool
}

func NewTransactionReadStore(pool *pgxpool.Pool) *TransactionReadStore {
	return &TransactionReadStore{pool: pool}
}

var _ queries.TransactionReadStore = (*TransactionReadStore)(nil)

func (s *TransactionReadStore) FindByReference(ctx context.Context, reference string) (*queries.TransactionView, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference = $1`

	var (
		id, rentalID         pgtype.UUID
		amountKobo           int64
		gateway              string
		ref                  pgtype.Text
		status               string
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, query, reference).Scan(
		&id, &rentalID, &amountKobo, &gateway, &ref, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction view", err)
	}

	return &queries.TransactionView{
		ID:         uuid.UUID(id.Bytes),
		RentalID:   uuid.UUID(rentalID.Bytes),
		AmountKobo: amountKobo,
		Gateway:    gateway,
		Reference:  pgconv.StringPtrFromPgtype(ref),
		Status:     status,
		CreatedAt:  pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:  pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
