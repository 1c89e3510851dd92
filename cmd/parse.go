package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"mspro-labs/catalog-scraper/internal/config"
	"mspro-labs/catalog-scraper/internal/export"
	"mspro-labs/catalog-scraper/internal/scraper"
)

var (
	parseCategory string
	parseOutDir   string
)

var parseCmd = &cobra.Command{
	Use:   "parse <snapshot.html>",
	Short: "Extract products from a saved category page",
	Long: `Reads the HTML of a fully loaded category page (for example saved from
the browser after clicking "more" until it disappears) and writes the products
to <category>.csv without launching a browser.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runParse(args[0]); err != nil {
			log.Fatalf("Parse failed: %v", err)
		}
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseCategory, "category", "", "category path the snapshot belongs to (empty = home)")
	parseCmd.Flags().StringVar(&parseOutDir, "out", "", "output directory (overrides OUTPUT_DIR)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(snapshotPath string) error {
	appCfg, err := config.GetAppConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	siteCfg, err := config.LoadSiteConfig(appCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load site config: %w", err)
	}

	html, err := os.ReadFile(snapshotPath)
	if err != nil {
		return err
	}
	products, err := scraper.ParseSnapshot(string(html), siteCfg)
	if err != nil {
		return err
	}

	outDir := appCfg.OutputDir
	if parseOutDir != "" {
		outDir = parseOutDir
	}
	path, err := export.WriteCSV(outDir, parseCategory, products)
	if err != nil {
		return err
	}
	log.Printf("Wrote %d products to %s", len(products), path)
	return nil
}
