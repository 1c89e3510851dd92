package scraper

import (
	"context"
	"fmt"
	"log"
	"os"

	"mspro-labs/catalog-scraper/internal/catalog"
	"mspro-labs/catalog-scraper/internal/config"
	"mspro-labs/catalog-scraper/internal/export"
	"mspro-labs/catalog-scraper/internal/models"
)

var logger = log.New(os.Stdout, "SCRAPER: ", log.LstdFlags|log.Lshortfile)

// SaveFunc receives each category's products after its CSV has been written.
type SaveFunc func(categoryPath string, products []models.Product) error

// Options controls a scrape run.
type Options struct {
	Categories []string // Defaults to the configured categories
	OutputDir  string
	BrowserBin string
	Save       SaveFunc // Optional extra sink, e.g. the SQLite store
}

// Run orchestrates the entire scraping process: launch, then harvest,
// extract and write every category in order. The first error stops the run;
// files already written for earlier categories are left in place.
func Run(ctx context.Context, cfg *config.SiteConfig, opts Options) error {
	categories := opts.Categories
	if len(categories) == 0 {
		categories = cfg.Categories
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	logger.Println("Launching browser...")
	session, err := Open(ctx, BrowserOptions{Headless: cfg.Headless, Bin: opts.BrowserBin})
	if err != nil {
		return err
	}
	defer session.Close()

	harvester := NewHarvester(session.Page(), cfg)
	extractor := NewExtractor(cfg)

	for _, category := range categories {
		if err := scrapeCategory(ctx, harvester, extractor, category, opts); err != nil {
			return fmt.Errorf("category %s: %w", catalog.Name(category), err)
		}
	}
	return session.Close()
}

func scrapeCategory(ctx context.Context, h *Harvester, x *Extractor, category string, opts Options) error {
	cards, err := h.Harvest(ctx, category)
	if err != nil {
		return err
	}

	products, err := x.ExtractAll(cards)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	path, err := export.WriteCSV(opts.OutputDir, category, products)
	if err != nil {
		return err
	}
	logger.Printf("Wrote %d products to %s", len(products), path)

	if opts.Save != nil {
		if err := opts.Save(category, products); err != nil {
			return fmt.Errorf("failed to save products: %w", err)
		}
	}
	return nil
}

// ParseSnapshot extracts products from the saved HTML of a fully loaded
// category page.
func ParseSnapshot(html string, cfg *config.SiteConfig) ([]models.Product, error) {
	cards, err := CardsFromHTML(html, cfg.Selectors.ProductCard)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return NewExtractor(cfg).ExtractAll(cards)
}
