package rbac

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-crm/internal/platform/db"
	"github.com/epic-events/epic-crm/internal/shared"
)

// Repository persists the permission table.
type Repository interface {
	ListGrants(ctx context.Context) ([]Grant, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes transactional operations.
type TxRepository interface {
	DeleteAllGrants(ctx context.Context) error
	InsertGrant(ctx context.Context, g Grant) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// WithTx runs fn inside a transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

// ListGrants returns every stored grant joined with its role name.
func (r *PGRepository) ListGrants(ctx context.Context) ([]Grant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.name, p.entity, p.action
		FROM permissions p
		JOIN roles r ON r.id = p.role_id
		ORDER BY r.name, p.entity, p.action`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var g Grant
		var entity, action string
		if err := rows.Scan(&g.Role, &entity, &action); err != nil {
			return nil, err
		}
		g.Entity = shared.Entity(entity)
		g.Action = shared.Action(action)
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return grants, nil
}

type txRepo struct {
	tx pgx.Tx
}

func (t *txRepo) DeleteAllGrants(ctx context.Context) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM permissions`)
	return db.Classify(err)
}

func (t *txRepo) InsertGrant(ctx context.Context, g Grant) error {
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO permissions (role_id, entity, action)
		SELECT id, $2, $3 FROM roles WHERE name = $1
		ON CONFLICT (role_id, entity, action) DO NOTHING`,
		g.Role, string(g.Entity), string(g.Action))
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, g.Role).Scan(&exists); err != nil {
			return db.Classify(err)
		}
		if !exists {
			return fmt.Errorf("%w: role %q", shared.ErrNotFound, g.Role)
		}
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
