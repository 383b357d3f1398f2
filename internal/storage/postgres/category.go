package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ebarkhatov/shopkeep/internal/domain/category"
)

const (
	listCategoriesSQL = `SELECT id, name FROM categories ORDER BY id`

	getCategoryByIDSQL = `SELECT id, name FROM categories WHERE id = $1`

	createCategorySQL = `INSERT INTO categories (id, name) VALUES ($1, $2)`

	updateCategorySQL = `UPDATE categories SET name = $2 WHERE id = $1`

	deleteCategorySQL = `DELETE FROM categories WHERE id = $1`

	upsertCategorySQL = `INSERT INTO categories (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`
)

var _ category.Repository = (*CategoryRepository)(nil)

// CategoryRepository implements category.Repository backed by PostgreSQL.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a CategoryRepository that uses the given pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// List returns all categories ordered by ID.
func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	rows, err := r.pool.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return pgx.CollectRows(rows, scanCategory)
}

// GetByID returns a single category by its identifier.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	rows, err := r.pool.Query(ctx, getCategoryByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting category %q: %w", id, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrNotFound
		}
		return nil, fmt.Errorf("getting category %q: %w", id, err)
	}
	return &c, nil
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	_, err := r.pool.Exec(ctx, createCategorySQL, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("creating category %q: %w", c.ID, err)
	}
	return nil
}

// Upsert inserts a category or overwrites one with the same ID. Used by the
// seed tool, which must be safe to re-run.
func (r *CategoryRepository) Upsert(ctx context.Context, c *category.Category) error {
	_, err := r.pool.Exec(ctx, upsertCategorySQL, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("upserting category %q: %w", c.ID, err)
	}
	return nil
}

// Update overwrites a category's name.
func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	tag, err := r.pool.Exec(ctx, updateCategorySQL, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("updating category %q: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

// Delete removes a category. Products referencing it are left untouched.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteCategorySQL, id)
	if err != nil {
		return fmt.Errorf("deleting category %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.CollectableRow) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name)
	return c, err
}
