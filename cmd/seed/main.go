package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/profitlens/backend-go/internal/domain"
)

type contextKey string

const dbKey contextKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the product catalog",
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "Load the built-in demo catalog, replacing existing products",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: seedDemo,
			},
			{
				Name:  "csv",
				Usage: "Load products from a CSV file, replacing existing products",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV file with name,purchasePrice,sellingPrice,unitsSoldWeek[,category,supplier,stockLevel]",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedCSV,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedDemo(c *cli.Context) error {
	db := c.Context.Value(dbKey).(*sql.DB)
	products := domain.SeedProducts()

	if err := replaceProducts(c.Context, db, products); err != nil {
		return err
	}

	log.Printf("seeded %d demo products", len(products))
	return nil
}

func seedCSV(c *cli.Context) error {
	db := c.Context.Value(dbKey).(*sql.DB)

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	products, err := parseCSV(f)
	if err != nil {
		return err
	}

	if err := replaceProducts(c.Context, db, products); err != nil {
		return err
	}

	log.Printf("seeded %d products from %s", len(products), c.String("file"))
	return nil
}

// parseCSV reads product rows, skipping a header line when present.
func parseCSV(r io.Reader) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var products []domain.Product
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("line %d: expected at least 4 columns, got %d", line, len(record))
		}

		p := domain.Product{
			ID:   domain.NewProductID(len(products)),
			Name: strings.TrimSpace(record[0]),
		}
		if p.Name == "" {
			return nil, fmt.Errorf("line %d: name is required", line)
		}
		if p.PurchasePrice, err = strconv.ParseFloat(strings.TrimSpace(record[1]), 64); err != nil {
			return nil, fmt.Errorf("line %d: bad purchase price: %w", line, err)
		}
		if p.SellingPrice, err = strconv.ParseFloat(strings.TrimSpace(record[2]), 64); err != nil {
			return nil, fmt.Errorf("line %d: bad selling price: %w", line, err)
		}
		if p.UnitsSoldWeek, err = strconv.Atoi(strings.TrimSpace(record[3])); err != nil {
			return nil, fmt.Errorf("line %d: bad units sold: %w", line, err)
		}
		if len(record) > 4 {
			p.Category = strings.TrimSpace(record[4])
		}
		if len(record) > 5 {
			p.Supplier = strings.TrimSpace(record[5])
		}
		if len(record) > 6 && strings.TrimSpace(record[6]) != "" {
			stock, err := strconv.Atoi(strings.TrimSpace(record[6]))
			if err != nil {
				return nil, fmt.Errorf("line %d: bad stock level: %w", line, err)
			}
			p.StockLevel = &stock
		}

		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("csv contained no products")
	}
	return products, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func replaceProducts(ctx context.Context, db *sql.DB, products []domain.Product) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	const insert = `
		INSERT INTO products (id, position, name, purchase_price, selling_price, units_sold_week, category, supplier, stock_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for i, p := range products {
		var stock sql.NullInt64
		if p.StockLevel != nil {
			stock = sql.NullInt64{Int64: int64(*p.StockLevel), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insert,
			p.ID, i+1, p.Name, p.PurchasePrice, p.SellingPrice, p.UnitsSoldWeek,
			nullIfEmpty(p.Category), nullIfEmpty(p.Supplier), stock,
		); err != nil {
			return fmt.Errorf("failed to insert %s: %w", p.Name, err)
		}
	}

	return tx.Commit()
}
