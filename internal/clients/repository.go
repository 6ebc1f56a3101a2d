package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-crm/internal/platform/db"
	"github.com/epic-events/epic-crm/internal/shared"
)

// Repository defines persistence operations for clients.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (*Client, error)
	GetByIdentity(ctx context.Context, firstName, lastName, companyName string) (*Client, error)
	GetByEmail(ctx context.Context, email string) (*Client, error)
	List(ctx context.Context, filter ListFilter) ([]Client, error)
}

// TxRepository exposes transactional operations.
type TxRepository interface {
	Create(ctx context.Context, client Client) (int64, error)
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

const selectClient = `
	SELECT c.id, c.first_name, c.last_name, c.email, c.phone, c.company_name, c.last_contact,
	       c.sales_contact_id, COALESCE(u.username, ''), c.created_at, c.updated_at
	FROM clients c
	LEFT JOIN users u ON u.id = c.sales_contact_id`

// WithTx runs fn inside a transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{db: tx})
	})
}

// Get fetches a client by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Client, error) {
	return scanClient(r.pool.QueryRow(ctx, selectClient+` WHERE c.id = $1`, id))
}

// GetByIdentity fetches the client with the given name and company.
func (r *PGRepository) GetByIdentity(ctx context.Context, firstName, lastName, companyName string) (*Client, error) {
	return scanClient(r.pool.QueryRow(ctx,
		selectClient+` WHERE c.first_name = $1 AND c.last_name = $2 AND c.company_name = $3`,
		firstName, lastName, companyName))
}

// GetByEmail fetches a client by email.
func (r *PGRepository) GetByEmail(ctx context.Context, email string) (*Client, error) {
	return scanClient(r.pool.QueryRow(ctx, selectClient+` WHERE c.email = $1`, email))
}

// List returns clients ordered by id.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Client, error) {
	var conditions []string
	var args []interface{}
	if filter.SalesContactID != nil {
		args = append(args, *filter.SalesContactID)
		conditions = append(conditions, fmt.Sprintf("c.sales_contact_id = $%d", len(args)))
	}

	query := selectClient
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return clients, nil
}

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CompanyName, &c.LastContact,
		&c.SalesContactID, &c.SalesContact, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, db.Classify(err)
	}
	return &c, nil
}

type txRepo struct {
	db db.DBTX
}

func (t *txRepo) Create(ctx context.Context, client Client) (int64, error) {
	var id int64
	err := t.db.QueryRow(ctx, `
		INSERT INTO clients (first_name, last_name, email, phone, company_name, last_contact, sales_contact_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		client.FirstName, client.LastName, client.Email, client.Phone, client.CompanyName,
		client.LastContact, client.SalesContactID).Scan(&id)
	if err != nil {
		return 0, db.Classify(err)
	}
	return id, nil
}

func (t *txRepo) Update(ctx context.Context, id int64, changes Changes) error {
	tag, err := t.db.Exec(ctx, `
		UPDATE clients SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			company_name = COALESCE($6, company_name),
			last_contact = COALESCE($7::date, last_contact),
			sales_contact_id = COALESCE($8, sales_contact_id),
			updated_at = GREATEST(now(), updated_at)
		WHERE id = $1`,
		id, changes.FirstName, changes.LastName, changes.Email, changes.Phone, changes.CompanyName,
		changes.LastContact, changes.SalesContactID)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %d", shared.ErrNotFound, id)
	}
	return nil
}

func (t *txRepo) Delete(ctx context.Context, id int64) error {
	tag, err := t.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %d", shared.ErrNotFound, id)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
