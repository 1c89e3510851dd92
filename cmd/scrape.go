package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mspro-labs/catalog-scraper/internal/config"
	"mspro-labs/catalog-scraper/internal/db"
	"mspro-labs/catalog-scraper/internal/models"
	"mspro-labs/catalog-scraper/internal/scraper"
)

var (
	scrapeCategories []string
	scrapeOutDir     string
	scrapeHeadful    bool
	scrapeBrowserBin string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every category into <category>.csv",
	Long: `Opens one browser session, visits each category in turn, clicks "more"
until every product is shown and writes the products to <category>.csv
(the root category is written to home.csv). When DB_PATH is set the products
are stored in SQLite as well.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScrape(); err != nil {
			log.Fatalf("Scraping failed: %v", err)
		}
		log.Println("Scraping completed successfully")
	},
}

func init() {
	scrapeCmd.Flags().StringArrayVar(&scrapeCategories, "category", nil, "category path to scrape, e.g. computers/laptops/ (repeatable, default all)")
	scrapeCmd.Flags().StringVar(&scrapeOutDir, "out", "", "output directory (overrides OUTPUT_DIR)")
	scrapeCmd.Flags().BoolVar(&scrapeHeadful, "headful", false, "show the browser window")
	scrapeCmd.Flags().StringVar(&scrapeBrowserBin, "browser", "", "path to a Chromium binary")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape() error {
	// 1. Load Config
	appCfg, err := config.GetAppConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	siteCfg, err := config.LoadSiteConfig(appCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load site config: %w", err)
	}
	if scrapeHeadful {
		siteCfg.Headless = false
	}

	outDir := appCfg.OutputDir
	if scrapeOutDir != "" {
		outDir = scrapeOutDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	opts := scraper.Options{
		Categories: scrapeCategories,
		OutputDir:  outDir,
		BrowserBin: scrapeBrowserBin,
	}

	// 2. Connect to DB (optional)
	if appCfg.DBPath != "" {
		database, err := db.Connect(appCfg.DBPath)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		defer database.Close()
		opts.Save = saveTo(database)
	}

	// 3. Run Scraper; an interrupt cancels ctx and the browser is still closed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return scraper.Run(ctx, siteCfg, opts)
}

func saveTo(database *sql.DB) scraper.SaveFunc {
	return func(category string, products []models.Product) error {
		count, err := db.SaveProducts(database, category, products)
		if err != nil {
			return err
		}
		log.Printf("Upserted %d records.", count)
		return nil
	}
}
