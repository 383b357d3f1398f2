package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ebarkhatov/shopkeep/internal/domain/product"
)

const (
	listProductsSQL = `SELECT id, name, description, price, category_id
		FROM products ORDER BY id`

	getProductByIDSQL = `SELECT id, name, description, price, category_id
		FROM products WHERE id = $1`

	getProductsByIDsSQL = `SELECT id, name, description, price, category_id
		FROM products WHERE id = ANY($1)`

	createProductSQL = `INSERT INTO products (id, name, description, price, category_id)
		VALUES ($1, $2, $3, $4, $5)`

	updateProductSQL = `UPDATE products SET name = $2, description = $3, price = $4, category_id = $5
		WHERE id = $1`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`

	upsertProductSQL = `INSERT INTO products (id, name, description, price, category_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description,
			price = EXCLUDED.price, category_id = EXCLUDED.category_id`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all products from the catalog ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	return &p, nil
}

// GetByIDs returns products matching any of the given IDs in one round trip.
// Missing IDs are simply absent from the result.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting products by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.pool.Exec(ctx, createProductSQL,
		p.ID, p.Name, p.Description, p.Price, p.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("creating product %q: %w", p.ID, err)
	}
	return nil
}

// Update overwrites an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.pool.Exec(ctx, updateProductSQL,
		p.ID, p.Name, p.Description, p.Price, p.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("updating product %q: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Upsert inserts a product or overwrites one with the same ID. Used by the
// seed and ingest tools, which must be safe to re-run.
func (r *ProductRepository) Upsert(ctx context.Context, p *product.Product) error {
	_, err := r.pool.Exec(ctx, upsertProductSQL,
		p.ID, p.Name, p.Description, p.Price, p.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", p.ID, err)
	}
	return nil
}

// Delete removes a product. Orders referencing it keep their stored snapshot.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return fmt.Errorf("deleting product %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var (
		p     product.Product
		price decimal.Decimal
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.CategoryID)
	p.Price = price
	return p, err
}
