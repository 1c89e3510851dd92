package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"mspro-labs/catalog-scraper/internal/catalog"
	"mspro-labs/catalog-scraper/internal/models"
)

// WriteCSV writes the products of one category to dir/<name>.csv, replacing
// any previous content. It returns the path written.
func WriteCSV(dir, categoryPath string, products []models.Product) (string, error) {
	path := filepath.Join(dir, catalog.Filename(categoryPath))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, products); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}

// Write serializes products as CSV with a header row.
func Write(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.ProductFields); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, p := range products {
		row := []string{
			p.Title,
			p.Description,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.Itoa(p.Rating),
			strconv.Itoa(p.NumOfReviews),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
