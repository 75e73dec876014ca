package repository

import (
	"context"

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

// RentalRepository is the write side: entity loads and guarded writes.
type RentalRepository struct {
	pool *pgxpool.Pool
}

func NewRentalRepository(pool *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{pool: pool}
}

var _ commands.RentalRepository = (*RentalRepository)(nil)

func (r *RentalRepository) Create(ctx context.Context, tx shared.DBTX, rentalEntity *rental.Rental) error {
	const query = `
		INSERT INTO rentals (id, item_id, vendor_id, renter_id, start_date, end_date, quantity, total_price_kobo, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(rentalEntity.ID()),
		pgconv.UUIDToPgtype(rentalEntity.ItemID()),
		pgconv.UUIDToPgtype(rentalEntity.VendorID()),
		pgconv.UUIDToPgtype(rentalEntity.RenterID()),
		pgconv.DateToPgtype(rentalEntity.Period().Start()),
		pgconv.DateToPgtype(rentalEntity.Period().End()),
		int32(rentalEntity.Quantity()),
		rentalEntity.TotalPrice().Kobo(),
		rentalEntity.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert rental", err)
	}
	return nil
}

func (r *RentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	const query = `
		SELECT id, item_id, vendor_id, renter_id, start_date, end_date, quantity, total_price_kobo, status, created_at, updated_at
		FROM rentals
		WHERE id = $1`

	var (
		rowID, itemID, vendorID, renterID pgtype.UUID
		startDate, endDate                pgtype.Date
		quantity                          int32
		totalPriceKobo                    int64
		status                            string
		createdAt, updatedAt              pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&rowID, &itemID, &vendorID, &renterID,
		&startDate, &endDate, &quantity, &totalPriceKobo, &status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental", err)
	}

	period, err := rental.NewDatePeriod(pgconv.DateFromPgtype(startDate), pgconv.DateFromPgtype(endDate))
	if err != nil {
		return nil, infra.WrapRepoErr("stored rental has invalid period", err)
	}
	totalPrice, err := rental.NewMoney(totalPriceKobo)
	if err != nil {
		return nil, infra.WrapRepoErr("stored rental has invalid price", err)
	}
	parsedStatus, err := rental.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored rental has invalid status", err)
	}

	return rental.ReconstructRental(
		uuid.UUID(rowID.Bytes),
		uuid.UUID(itemID.Bytes),
		uuid.UUID(vendorID.Bytes),
		uuid.UUID(renterID.Bytes),
		period,
		int(quantity),
		totalPrice,
		parsedStatus,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// UpdateStatusIf is the compare-and-transition guard: the row only moves
// when it is still in the expected status, so concurrent settlements and
// cancellations cannot clobber each other.
func (r *RentalRepository) UpdateStatusIf(ctx context.Context, tx shared.DBTX, id uuid.UUID, from, to rental.Status) (bool, error) {
	const query = `
		UPDATE rentals
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(id), from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update rental status", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RentalReadStore is the read side: denormalized views for the API.
type RentalReadStore struct {
	pool *pgxpool.Pool
}

func NewRentalReadStore(pool *pgxpool.Pool) *RentalReadStore {
	return &RentalReadStore{pool: pool}
}

var _ queries.RentalReadStore = (*RentalReadStore)(nil)

func (s *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	const query = `
		SELECT r.id, r.item_id, i.title, r.vendor_id, v.name, r.renter_id, u.name,
		       r.start_date, r.end_date, r.quantity, r.total_price_kobo, r.status,
		       r.created_at, r.updated_at
		FROM rentals r
		JOIN items i ON i.id = r.item_id
		JOIN users v ON v.id = r.vendor_id
		JOIN users u ON u.id = r.renter_id
		WHERE r.id = $1`

	var (
		rowID, itemID, vendorID, renterID pgtype.UUID
		itemTitle, vendorName, renterName string
		startDate, endDate                pgtype.Date
		quantity                          int32
		totalPriceKobo                    int64
		status                            string
		createdAt, updatedAt              pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&rowID, &itemID, &itemTitle, &vendorID, &vendorName, &renterID, &renterName,
		&startDate, &endDate, &quantity, &totalPriceKobo, &status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental view", err)
	}

	return &queries.RentalView{
		ID:             uuid.UUID(rowID.Bytes),
		ItemID:         uuid.UUID(itemID.Bytes),
		ItemTitle:      itemTitle,
		VendorID:       uuid.UUID(vendorID.Bytes),
		VendorName:     vendorName,
		RenterID:       uuid.UUID(renterID.Bytes),
		RenterName:     renterName,
		StartDate:      pgconv.DateFromPgtype(startDate),
		EndDate:        pgconv.DateFromPgtype(endDate),
		Quantity:       quantity,
		TotalPriceKobo: totalPriceKobo,
		Status:         status,
		CreatedAt:      pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:      pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func (s *RentalReadStore) FindByRenterID(ctx context.Context, renterID uuid.UUID) ([]*queries.RentalListItem, error) {
	const query = `
		SELECT r.id, r.item_id, i.title, r.start_date, r.end_date, r.quantity, r.total_price_kobo, r.status, r.created_at
		FROM rentals r
		JOIN items i ON i.id = r.item_id
		WHERE r.renter_id = $1
		ORDER BY r.created_at DESC`

	return s.listRentals(ctx, query, pgconv.UUIDToPgtype(renterID))
}

func (s *RentalReadStore) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*queries.RentalListItem, error) {
	const query = `
		SELECT r.id, r.item_id, i.title, r.start_date, r.end_date, r.quantity, r.total_price_kobo, r.status, r.created_at
		FROM rentals r
		JOIN items i ON i.id = r.item_id
		WHERE r.vendor_id = $1
		ORDER BY r.created_at DESC`

	return s.listRentals(ctx, query, pgconv.UUIDToPgtype(vendorID))
}

func (s *RentalReadStore) listRentals(ctx context.Context, query string, arg any) ([]*queries.RentalListItem, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rentals", err)
	}
	defer rows.Close()

	result := make([]*queries.RentalListItem, 0)
	for rows.Next() {
		var (
			id, itemID         pgtype.UUID
			itemTitle          string
			startDate, endDate pgtype.Date
			quantity           int32
			totalPriceKobo     int64
			status             string
			createdAt          pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &itemID, &itemTitle, &startDate, &endDate, &quantity, &totalPriceKobo, &status, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental row", err)
		}
		result = append(result, &queries.RentalListItem{
			ID:             uuid.UUID(id.Bytes),
			ItemID:         uuid.UUID(itemID.Bytes),
			ItemTitle:      itemTitle,
			StartDate:      pgconv.DateFromPgtype(startDate),
			EndDate:        pgconv.DateFromPgtype(endDate),
			Quantity:       quantity,
			TotalPriceKobo: totalPriceKobo,
			Status:         status,
			CreatedAt:      pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rental rows", err)
	}
	return result, nil
}
