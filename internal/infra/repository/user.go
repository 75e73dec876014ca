package repository

import (
	"context"
	"strings"

	"rentmart/internal/domain/user"
	"rentmart/internal/infra"
	"rentmart/internal/pkg/pgconv"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

var (
	_ commands.UserRepository = (*UserRepository)(nil)
	_ queries.UserReadStore   = (*UserRepository)(nil)
)

const userColumns = `id, email, name, role, password_hash, created_at`

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`

	return r.scanUser(ctx, query, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	return r.scanUser(ctx, query, pgconv.UUIDToPgtype(id))
}

func (r *UserRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	account, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &queries.UserView{
		ID:        account.ID(),
		Email:     account.Email(),
		Name:      account.Name(),
		Role:      account.Role().String(),
		CreatedAt: account.CreatedAt(),
	}, nil
}

func (r *UserRepository) scanUser(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		id           pgtype.UUID
		email, name  string
		role         string
		passwordHash string
		createdAt    pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(&id, &email, &name, &role, &passwordHash, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	parsedRole, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid role", err)
	}

	return user.ReconstructUser(
		uuid.UUID(id.Bytes),
		email,
		name,
		parsedRole,
		passwordHash,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
