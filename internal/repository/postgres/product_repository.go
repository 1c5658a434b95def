package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/repository"
)

type productRepository struct {
	db *DB
}

// NewProductRepository builds the Postgres-backed product store.
func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// productRow mirrors the products table; category and supplier are
// nullable there but plain strings in the domain model.
type productRow struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	PurchasePrice float64        `db:"purchase_price"`
	SellingPrice  float64        `db:"selling_price"`
	UnitsSoldWeek int            `db:"units_sold_week"`
	Category      sql.NullString `db:"category"`
	Supplier      sql.NullString `db:"supplier"`
	StockLevel    sql.NullInt64  `db:"stock_level"`
}

func (r productRow) toDomain() domain.Product {
	p := domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		PurchasePrice: r.PurchasePrice,
		SellingPrice:  r.SellingPrice,
		UnitsSoldWeek: r.UnitsSoldWeek,
	}
	if r.Category.Valid {
		p.Category = r.Category.String
	}
	if r.Supplier.Valid {
		p.Supplier = r.Supplier.String
	}
	if r.StockLevel.Valid {
		stock := int(r.StockLevel.Int64)
		p.StockLevel = &stock
	}
	return p
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableStock(stock *int) sql.NullInt64 {
	if stock == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*stock), Valid: true}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, purchase_price, selling_price, units_sold_week, category, supplier, stock_level
		FROM products
		ORDER BY position ASC
	`

	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toDomain()
	}
	return products, nil
}

func (r *productRepository) Create(ctx context.Context, p domain.Product) error {
	query := `
		INSERT INTO products (id, name, purchase_price, selling_price, units_sold_week, category, supplier, stock_level, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM products))
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.PurchasePrice, p.SellingPrice, p.UnitsSoldWeek,
		nullIfEmpty(p.Category), nullIfEmpty(p.Supplier), nullableStock(p.StockLevel))
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, purchase_price = $3, selling_price = $4, units_sold_week = $5,
			category = $6, supplier = $7, stock_level = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.PurchasePrice, p.SellingPrice, p.UnitsSoldWeek,
		nullIfEmpty(p.Category), nullIfEmpty(p.Supplier), nullableStock(p.StockLevel))
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}

		insert := `
			INSERT INTO products (id, name, purchase_price, selling_price, units_sold_week, category, supplier, stock_level, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		for i, p := range products {
			if _, err := tx.ExecContext(ctx, insert,
				p.ID, p.Name, p.PurchasePrice, p.SellingPrice, p.UnitsSoldWeek,
				nullIfEmpty(p.Category), nullIfEmpty(p.Supplier), nullableStock(p.StockLevel), i+1); err != nil {
				return fmt.Errorf("failed to insert product %q: %w", p.Name, err)
			}
		}
		return nil
	})
}
