package repository

import (
	"context"

	"rentmart/internal/domain/item"
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

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

var _ commands.ItemRepository = (*ItemRepository)(nil)

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	const query = `
		INSERT INTO items (id, vendor_id, category_id, title, description, daily_rate_kobo, quantity, quantity_available, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(it.ID()),
		pgconv.UUIDToPgtype(it.VendorID()),
		pgconv.UUIDPtrToPgtype(it.CategoryID()),
		it.Title(),
		it.Description(),
		it.DailyRate().Kobo(),
		int32(it.Quantity()),
		int32(it.QuantityAvailable()),
		it.Images(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert item", err)
	}
	return nil
}

// Update coalesces unset patch fields to the stored values, so a partial
// edit is a single statement.
func (r *ItemRepository) Update(ctx context.Context, id uuid.UUID, patch commands.ItemPatch) error {
	const query = `
		UPDATE items
		SET title           = COALESCE($2, title),
		    description     = COALESCE($3, description),
		    daily_rate_kobo = COALESCE($4, daily_rate_kobo),
		    images          = COALESCE($5, images),
		    updated_at      = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(id),
		patch.Title,
		patch.Description,
		patch.DailyRateKobo,
		patch.Images,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*commands.ItemSnapshot, error) {
	const query = `
		SELECT id, vendor_id, title, daily_rate_kobo, quantity, quantity_available
		FROM items
		WHERE id = $1`

	var (
		rowID, vendorID             pgtype.UUID
		title                       string
		dailyRateKobo               int64
		quantity, quantityAvailable int32
	)
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&rowID, &vendorID, &title, &dailyRateKobo, &quantity, &quantityAvailable,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item", err)
	}

	dailyRate, err := rental.NewMoney(dailyRateKobo)
	if err != nil {
		return nil, infra.WrapRepoErr("stored item has invalid rate", err)
	}

	return &commands.ItemSnapshot{
		ID:                uuid.UUID(rowID.Bytes),
		VendorID:          uuid.UUID(vendorID.Bytes),
		Title:             title,
		DailyRate:         dailyRate,
		Quantity:          int(quantity),
		QuantityAvailable: int(quantityAvailable),
	}, nil
}

// ReserveQuantity decrements availability only when enough units remain.
// The WHERE guard makes concurrent over-booking impossible without an
// explicit row lock.
func (r *ItemRepository) ReserveQuantity(ctx context.Context, tx shared.DBTX, id uuid.UUID, quantity int) (bool, error) {
	const query = `
		UPDATE items
		SET quantity_available = quantity_available - $2, updated_at = now()
		WHERE id = $1 AND quantity_available >= $2`

	tag, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(id), int32(quantity))
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve item quantity", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ReleaseQuantity returns units to the pool, capped at the item's total
// so a double release cannot inflate availability.
func (r *ItemRepository) ReleaseQuantity(ctx context.Context, tx shared.DBTX, id uuid.UUID, quantity int) error {
	const query = `
		UPDATE items
		SET quantity_available = LEAST(quantity, quantity_available + $2), updated_at = now()
		WHERE id = $1`

	_, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(id), int32(quantity))
	if err != nil {
		return infra.WrapRepoErr("failed to release item quantity", err)
	}
	return nil
}

// ItemReadStore serves the public catalog views.
type ItemReadStore struct {
	pool *pgxpool.Pool
}

func NewItemReadStore(pool *pgxpool.Pool) *ItemReadStore {
	return &ItemReadStore{pool: pool}
}

var _ queries.ItemReadStore = (*ItemReadStore)(nil)

const itemViewQuery = `
	SELECT i.id, i.vendor_id, v.name, i.category_id, c.name,
	       i.title, i.description, i.daily_rate_kobo, i.quantity, i.quantity_available,
	       i.images, i.created_at
	FROM items i
	JOIN users v ON v.id = i.vendor_id
	LEFT JOIN categories c ON c.id = i.category_id`

func (s *ItemReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	row := s.pool.QueryRow(ctx, itemViewQuery+` WHERE i.id = $1`, pgconv.UUIDToPgtype(id))
	view, err := scanItemView(row.Scan)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item view", err)
	}
	return view, nil
}

func (s *ItemReadStore) List(ctx context.Context, filter queries.ItemFilter) ([]*queries.ItemView, error) {
	query := itemViewQuery + `
	WHERE ($1::uuid IS NULL OR i.category_id = $1)
	  AND ($2::uuid IS NULL OR i.vendor_id = $2)
	ORDER BY i.created_at DESC`

	rows, err := s.pool.Query(ctx, query,
		pgconv.UUIDPtrToPgtype(filter.CategoryID),
		pgconv.UUIDPtrToPgtype(filter.VendorID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	result := make([]*queries.ItemView, 0)
	for rows.Next() {
		view, scanErr := scanItemView(rows.Scan)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate item rows", err)
	}
	return result, nil
}

func scanItemView(scan func(dest ...any) error) (*queries.ItemView, error) {
	var (
		id, vendorID                pgtype.UUID
		vendorName                  string
		categoryID                  pgtype.UUID
		categoryName                pgtype.Text
		title, description          string
		dailyRateKobo               int64
		quantity, quantityAvailable int32
		images                      []string
		createdAt                   pgtype.Timestamptz
	)
	err := scan(
		&id, &vendorID, &vendorName, &categoryID, &categoryName,
		&title, &description, &dailyRateKobo, &quantity, &quantityAvailable,
		&images, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	return &queries.ItemView{
		ID:                uuid.UUID(id.Bytes),
		VendorID:          uuid.UUID(vendorID.Bytes),
		VendorName:        vendorName,
		CategoryID:        pgconv.UUIDPtrFromPgtype(categoryID),
		CategoryName:      pgconv.StringPtrFromPgtype(categoryName),
		Title:             title,
		Description:       description,
		DailyRateKobo:     dailyRateKobo,
		Quantity:          quantity,
		QuantityAvailable: quantityAvailable,
		Images:            images,
		CreatedAt:         pgconv.TimeFromPgtype(createdAt),
	}, nil
}
