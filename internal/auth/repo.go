package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-crm/internal/platform/db"
)

// Repository defines persistence operations for auth module.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const selectAccount = `
	SELECT u.id, u.username, u.password_hash, r.name
	FROM users u
	JOIN roles r ON r.id = u.role_id`

// FindByUsername fetches an account by username.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx, selectAccount+` WHERE u.username = $1`, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role)
	if err != nil {
		return nil, db.Classify(err)
	}
	return &a, nil
}

// FindByID fetches an account by id.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx, selectAccount+` WHERE u.id = $1`, id).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role)
	if err != nil {
		return nil, db.Classify(err)
	}
	return &a, nil
}

var _ Repository = (*PGRepository)(nil)
