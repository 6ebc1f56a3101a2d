package contracts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-crm/internal/platform/db"
	"github.com/epic-events/epic-crm/internal/shared"
)

// Repository defines persistence operations for contracts.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (*Contract, error)
	List(ctx context.Context, filter ListFilter) ([]Contract, error)
	ClientExists(ctx context.Context, clientID int64) (bool, error)
}

// TxRepository exposes transactional operations.
type TxRepository interface {
	Create(ctx context.Context, contract Contract) (int64, error)
	Update(ctx context.Context, id int64, changes Changes) error
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Amounts travel as integer cents; NUMERIC(12,2) keeps them exact on the server.
const selectContract = `
	SELECT k.id, k.client_id, c.first_name || ' ' || c.last_name || ' (' || c.company_name || ')',
	       k.sales_contact_id, COALESCE(u.username, ''),
	       (k.total_amount * 100)::bigint, (k.amount_remaining * 100)::bigint,
	       k.status, k.date_created, k.created_at, k.updated_at
	FROM contracts k
	JOIN clients c ON c.id = k.client_id
	LEFT JOIN users u ON u.id = k.sales_contact_id`

// WithTx runs fn inside a transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{db: tx})
	})
}

// Get fetches a contract by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Contract, error) {
	return scanContract(r.pool.QueryRow(ctx, selectContract+` WHERE k.id = $1`, id))
}

// ClientExists reports whether the client row exists.
func (r *PGRepository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, clientID).Scan(&exists); err != nil {
		return false, db.Classify(err)
	}
	return exists, nil
}

// List returns contracts matching filter ordered by id.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Contract, error) {
	var conditions []string
	var args []interface{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("k.status = $%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conditions = append(conditions, fmt.Sprintf("k.client_id = $%d", len(args)))
	}
	if filter.SalesContactID != nil {
		args = append(args, *filter.SalesContactID)
		conditions = append(conditions, fmt.Sprintf("k.sales_contact_id = $%d", len(args)))
	}
	if filter.Unpaid {
		conditions = append(conditions, "k.amount_remaining > 0")
	}

	query := selectContract
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY k.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var contracts []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return contracts, nil
}

func scanContract(row pgx.Row) (*Contract, error) {
	var c Contract
	var total, remaining int64
	var status string
	err := row.Scan(&c.ID, &c.ClientID, &c.ClientName, &c.SalesContactID, &c.SalesContact,
		&total, &remaining, &status, &c.DateCreated, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, db.Classify(err)
	}
	c.TotalAmount = Money(total)
	c.AmountRemaining = Money(remaining)
	c.Status = Status(status)
	return &c, nil
}

type txRepo struct {
	db db.DBTX
}

func (t *txRepo) Create(ctx context.Context, contract Contract) (int64, error) {
	var dateCreated *time.Time
	if !contract.DateCreated.IsZero() {
		dateCreated = &contract.DateCreated
	}
	var id int64
	err := t.db.QueryRow(ctx, `
		INSERT INTO contracts (client_id, sales_contact_id, total_amount, amount_remaining, status, date_created)
		VALUES ($1, $2, $3::bigint / 100.0, $4::bigint / 100.0, $5, COALESCE($6::date, CURRENT_DATE))
		RETURNING id`,
		contract.ClientID, contract.SalesContactID, int64(contract.TotalAmount), int64(contract.AmountRemaining),
		string(contract.Status), dateCreated).Scan(&id)
	if err != nil {
		return 0, db.Classify(err)
	}
	return id, nil
}

func (t *txRepo) Update(ctx context.Context, id int64, changes Changes) error {
	var status *string
	if changes.Status != nil {
		s := string(*changes.Status)
		status = &s
	}
	tag, err := t.db.Exec(ctx, `
		UPDATE contracts SET
			total_amount = COALESCE($2::bigint / 100.0, total_amount),
			amount_remaining = COALESCE($3::bigint / 100.0, amount_remaining),
			status = COALESCE($4, status),
			sales_contact_id = COALESCE($5, sales_contact_id),
			updated_at = GREATEST(now(), updated_at)
		WHERE id = $1`,
		id, moneyPtr(changes.TotalAmount), moneyPtr(changes.AmountRemaining), status, changes.SalesContactID)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: contract %d", shared.ErrNotFound, id)
	}
	return nil
}

func (t *txRepo) Delete(ctx context.Context, id int64) error {
	tag, err := t.db.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: contract %d", shared.ErrNotFound, id)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
