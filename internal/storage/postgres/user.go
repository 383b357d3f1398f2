package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ebarkhatov/shopkeep/internal/domain/user"
)

const (
	listUsersSQL = `SELECT id, name, email, password FROM users ORDER BY id`

	getUserByIDSQL = `SELECT id, name, email, password FROM users WHERE id = $1`

	createUserSQL = `INSERT INTO users (id, name, email, password) VALUES ($1, $2, $3, $4)`

	updateUserSQL = `UPDATE users SET name = $2, email = $3 WHERE id = $1`

	deleteUserSQL = `DELETE FROM users WHERE id = $1`

	upsertUserSQL = `INSERT INTO users (id, name, email, password) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, password = EXCLUDED.password`
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// List returns all users ordered by ID.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return pgx.CollectRows(rows, scanUser)
}

// GetByID returns a single user by its identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	rows, err := r.pool.Query(ctx, getUserByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting user %q: %w", id, err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %q: %w", id, err)
	}
	return &u, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx, createUserSQL, u.ID, u.Name, u.Email, u.Password)
	if err != nil {
		return fmt.Errorf("creating user %q: %w", u.ID, err)
	}
	return nil
}

// Upsert inserts a user or overwrites one with the same ID. Used by the
// seed tool, which must be safe to re-run.
func (r *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx, upsertUserSQL, u.ID, u.Name, u.Email, u.Password)
	if err != nil {
		return fmt.Errorf("upserting user %q: %w", u.ID, err)
	}
	return nil
}

// Update overwrites a user's name and email. The password credential is
// immutable through this path.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.pool.Exec(ctx, updateUserSQL, u.ID, u.Name, u.Email)
	if err != nil {
		return fmt.Errorf("updating user %q: %w", u.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

// Delete removes a user. Orders referencing the user are left untouched.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return fmt.Errorf("deleting user %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.CollectableRow) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	return u, err
}
