package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-scraper",
	Short: "Scrape the demo e-commerce catalog into per-category CSV files",
	Long: `Drives a headless browser through every category of the demo catalog,
reveals all products behind the "more" button and writes one CSV per category.

Settings are read from CONFIG_PATH (default config.yaml, optional),
OUTPUT_DIR (default .) and DB_PATH (optional SQLite store).`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
