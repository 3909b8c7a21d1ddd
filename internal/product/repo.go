// File: internal/product/repo.go
// Package product provides the catalog record, its repository interface and the
// PostgreSQL and in-memory implementations.
package product

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	// List returns the whole catalog in insertion order.
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) (bool, error)
	// AdjustStock adds delta (possibly negative) to the stock of id.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectColumns = `
	SELECT id, name, description, category, type, brand,
	       price::text, sale_price::text, total_stock, rating, reviews, featured,
	       image, weight, origin, created_at, updated_at
	FROM products`

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p                Product
		price, salePrice string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Type, &p.Brand,
		&price, &salePrice, &p.TotalStock, &p.Rating, &p.Reviews, &p.Featured,
		&p.Image, &p.Weight, &p.Origin, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	if p.SalePrice, err = decimal.NewFromString(salePrice); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create assigns a uuid when p.ID is empty and fills the stored timestamps back into p.
func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO products (id, name, description, category, type, brand, price, sale_price,
		                      total_stock, rating, reviews, featured, image, weight, origin,
		                      created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7::numeric,$8::numeric,$9,$10,$11,$12,$13,$14,$15,NOW(),NOW())
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Description, p.Category, p.Type, p.Brand, p.Price.String(), p.SalePrice.String(),
		p.TotalStock, p.Rating, p.Reviews, p.Featured, p.Image, p.Weight, p.Origin).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, selectColumns+` WHERE id=$1`, id))
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, selectColumns+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, category = $4, type = $5, brand = $6,
		    price = $7::numeric, sale_price = $8::numeric, total_stock = $9,
		    featured = $10, image = $11, weight = $12, origin = $13,
		    updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Category, p.Type, p.Brand, p.Price.String(), p.SalePrice.String(),
		p.TotalStock, p.Featured, p.Image, p.Weight, p.Origin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var stock int
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET total_stock = total_stock + $2, updated_at = NOW()
		WHERE id = $1 AND total_stock + $2 >= 0
		RETURNING total_stock
	`, id, delta).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return 0, ErrNotFound
		}
		return 0, ErrInsufficientStock
	}
	return stock, err
}
