package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-crm/internal/platform/db"
	"github.com/epic-events/epic-crm/internal/shared"
)

// Repository defines persistence operations for users.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	List(ctx context.Context) ([]User, error)
}

// TxRepository exposes transactional operations.
type TxRepository interface {
	Create(ctx context.Context, user User) (int64, error)
	CreateProfile(ctx context.Context, userID int64, bio string) error
	Update(ctx context.Context, id int64, changes Changes) error
	UpdateProfile(ctx context.Context, userID int64, bio string) error
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

const selectUser = `
	SELECT u.id, u.username, u.password_hash, u.role_id, r.name, u.email, u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON r.id = u.role_id`

// WithTx runs fn inside a transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{db: tx})
	})
}

// Get fetches a user by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE u.id = $1`, id))
}

// GetByUsername fetches a user by username.
func (r *PGRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE u.username = $1`, username))
}

// GetByEmail fetches a user by email.
func (r *PGRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE u.email = $1`, email))
}

// GetProfile fetches the profile joined with its user.
func (r *PGRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx, `
		SELECT p.user_id, u.username, u.email, r.name, p.bio, p.created_at, p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		JOIN roles r ON r.id = u.role_id
		WHERE p.user_id = $1`, userID).
		Scan(&p.UserID, &p.Username, &p.Email, &p.Role, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, db.Classify(err)
	}
	return &p, nil
}

// List returns all users ordered by id.
func (r *PGRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, selectUser+` ORDER BY u.id`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID, &u.Role, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, db.Classify(err)
	}
	return &u, nil
}

type txRepo struct {
	db db.DBTX
}

func (t *txRepo) Create(ctx context.Context, user User) (int64, error) {
	var id int64
	err := t.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role_id, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		user.Username, user.PasswordHash, user.RoleID, user.Email).Scan(&id)
	if err != nil {
		return 0, db.Classify(err)
	}
	return id, nil
}

func (t *txRepo) CreateProfile(ctx context.Context, userID int64, bio string) error {
	_, err := t.db.Exec(ctx, `INSERT INTO profiles (user_id, bio) VALUES ($1, $2)`, userID, bio)
	return db.Classify(err)
}

func (t *txRepo) Update(ctx context.Context, id int64, changes Changes) error {
	tag, err := t.db.Exec(ctx, `
		UPDATE users SET
			username = COALESCE($2, username),
			email = COALESCE($3, email),
			role_id = COALESCE($4, role_id),
			password_hash = COALESCE($5, password_hash),
			updated_at = GREATEST(now(), updated_at)
		WHERE id = $1`,
		id, changes.Username, changes.Email, changes.RoleID, changes.PasswordHash)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}
	return nil
}

func (t *txRepo) UpdateProfile(ctx context.Context, userID int64, bio string) error {
	tag, err := t.db.Exec(ctx, `
		UPDATE profiles SET bio = $2, updated_at = GREATEST(now(), updated_at)
		WHERE user_id = $1`, userID, bio)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: profile %d", shared.ErrNotFound, userID)
	}
	return nil
}

func (t *txRepo) Delete(ctx context.Context, id int64) error {
	tag, err := t.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
