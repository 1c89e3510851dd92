package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import for side-effects only

	"mspro-labs/catalog-scraper/internal/catalog"
	"mspro-labs/catalog-scraper/internal/models"
)

// Connect opens a connection to the SQLite database and ensures the schema exists.
// It automatically applies recommended settings for concurrency (WAL mode).
func Connect(dbPath string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// createSchema is private as it's only called by Connect.
func createSchema(db *sql.DB) error {
	productTable := `
	CREATE TABLE IF NOT EXISTS product (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  category TEXT NOT NULL,
	  position INTEGER NOT NULL,
	  title TEXT NOT NULL,
	  description TEXT,
	  price REAL,
	  rating INTEGER,
	  num_of_reviews INTEGER,
	  first_scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	  last_scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	  is_active INTEGER DEFAULT 1,
	  UNIQUE (category, position)
	);
	CREATE INDEX IF NOT EXISTS idx_category_active ON product(category, is_active);
	`
	_, err := db.Exec(productTable)
	return err
}

// SaveProducts replaces the active snapshot of one category. Rows of the
// previous run are marked inactive, then every product is upserted by its
// position in the listing. Everything happens in one transaction.
func SaveProducts(db *sql.DB, categoryPath string, products []models.Product) (int64, error) {
	category := catalog.Name(categoryPath)

	upsertSQL := `
	INSERT INTO product (
	  category, position, title, description, price, rating, num_of_reviews,
	  last_scraped_at, is_active
	) VALUES (
	  ?, ?, ?, ?, ?, ?, ?,
	  CURRENT_TIMESTAMP, 1
	) ON CONFLICT(category, position) DO UPDATE SET
	  title = excluded.title,
	  description = excluded.description,
	  price = excluded.price,
	  rating = excluded.rating,
	  num_of_reviews = excluded.num_of_reviews,
	  last_scraped_at = CURRENT_TIMESTAMP,
	  is_active = 1;
	`

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE product SET is_active = 0 WHERE category = ? AND is_active = 1;`, category); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to mark %s inactive: %w", category, err)
	}

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	var totalAffected int64 = 0
	for i, p := range products {
		res, err := stmt.ExecContext(ctx,
			category,
			i,
			p.Title,
			sql.NullString{String: p.Description, Valid: p.Description != ""},
			p.Price,
			p.Rating,
			p.NumOfReviews,
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to upsert %s #%d: %w", category, i, err)
		}
		rows, _ := res.RowsAffected()
		totalAffected += rows
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return totalAffected, nil
}

// GetActiveProducts returns the latest snapshot of a category in listing order.
func GetActiveProducts(db *sql.DB, categoryPath string) ([]models.Product, error) {
	rows, err := db.Query(`
		SELECT title, COALESCE(description, ''), price, rating, num_of_reviews
		FROM product
		WHERE category = ? AND is_active = 1
		ORDER BY position
	`, catalog.Name(categoryPath))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Title, &p.Description, &p.Price, &p.Rating, &p.NumOfReviews); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CategoryCount is the number of active products stored for a category.
type CategoryCount struct {
	Category      string
	Products      int
	LastScrapedAt time.Time
}

// ListCategories summarizes the active snapshot of every stored category.
func ListCategories(db *sql.DB) ([]CategoryCount, error) {
	rows, err := db.Query(`
		SELECT category, COUNT(*), MAX(last_scraped_at)
		FROM product
		WHERE is_active = 1
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		var last string
		if err := rows.Scan(&c.Category, &c.Products, &last); err != nil {
			return nil, err
		}
		c.LastScrapedAt, _ = time.Parse("2006-01-02 15:04:05", last)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
