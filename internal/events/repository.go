package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-crm/internal/platform/db"
	"github.com/epic-events/epic-crm/internal/shared"
)

// Repository defines persistence operations for events.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter ListFilter) ([]Event, error)
}

// TxRepository exposes transactional operations.
type TxRepository interface {
	Create(ctx context.Context, event Event) (int64, error)
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

const selectEvent = `
	SELECT e.id, e.contract_id, c.first_name || ' ' || c.last_name || ' (' || c.company_name || ')',
	       e.support_contact_id, COALESCE(u.username, ''),
	       e.event_date_start, e.event_date_end, e.location, e.attendees, e.notes,
	       e.created_at, e.updated_at
	FROM events e
	JOIN contracts k ON k.id = e.contract_id
	JOIN clients c ON c.id = k.client_id
	LEFT JOIN users u ON u.id = e.support_contact_id`

// WithTx runs fn inside a transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{db: tx})
	})
}

// Get fetches an event by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, selectEvent+` WHERE e.id = $1`, id))
}

// List returns events matching filter ordered by start date.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	var conditions []string
	var args []interface{}
	if filter.ContractID != nil {
		args = append(args, *filter.ContractID)
		conditions = append(conditions, fmt.Sprintf("e.contract_id = $%d", len(args)))
	}
	if filter.SupportContactID != nil {
		args = append(args, *filter.SupportContactID)
		conditions = append(conditions, fmt.Sprintf("e.support_contact_id = $%d", len(args)))
	}
	if filter.Unassigned {
		conditions = append(conditions, "e.support_contact_id IS NULL")
	}

	query := selectEvent
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.event_date_start, e.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return events, nil
}

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.ContractID, &e.ClientName, &e.SupportContactID, &e.SupportContact,
		&e.EventDateStart, &e.EventDateEnd, &e.Location, &e.Attendees, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, db.Classify(err)
	}
	return &e, nil
}

type txRepo struct {
	db db.DBTX
}

func (t *txRepo) Create(ctx context.Context, event Event) (int64, error) {
	var id int64
	err := t.db.QueryRow(ctx, `
		INSERT INTO events (contract_id, support_contact_id, event_date_start, event_date_end, location, attendees, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		event.ContractID, event.SupportContactID, event.EventDateStart, event.EventDateEnd,
		event.Location, event.Attendees, event.Notes).Scan(&id)
	if err != nil {
		return 0, db.Classify(err)
	}
	return id, nil
}

func (t *txRepo) Update(ctx context.Context, id int64, changes Changes) error {
	tag, err := t.db.Exec(ctx, `
		UPDATE events SET
			event_date_start = COALESCE($2, event_date_start),
			event_date_end = COALESCE($3, event_date_end),
			location = COALESCE($4, location),
			attendees = COALESCE($5, attendees),
			notes = COALESCE($6, notes),
			support_contact_id = COALESCE($7, support_contact_id),
			updated_at = GREATEST(now(), updated_at)
		WHERE id = $1`,
		id, changes.EventDateStart, changes.EventDateEnd, changes.Location, changes.Attendees,
		changes.Notes, changes.SupportContactID)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: event %d", shared.ErrNotFound, id)
	}
	return nil
}

func (t *txRepo) Delete(ctx context.Context, id int64) error {
	tag, err := t.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: event %d", shared.ErrNotFound, id)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
