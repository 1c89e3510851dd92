package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"mspro-labs/catalog-scraper/internal/config"
	"mspro-labs/catalog-scraper/internal/db"
	"mspro-labs/catalog-scraper/internal/export"
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "Show products stored in the SQLite database",
	Long: `Without arguments, prints how many products each stored category has.
With a category path, prints that category's latest snapshot as CSV.
Requires DB_PATH.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runList(args); err != nil {
			log.Fatalf("List failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(args []string) error {
	appCfg, err := config.GetAppConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if appCfg.DBPath == "" {
		return errors.New("DB_PATH is not set")
	}

	database, err := db.Connect(appCfg.DBPath)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	defer database.Close()

	if len(args) == 1 {
		products, err := db.GetActiveProducts(database, args[0])
		if err != nil {
			return err
		}
		return export.Write(os.Stdout, products)
	}

	counts, err := db.ListCategories(database)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("No products stored yet.")
		return nil
	}
	for _, c := range counts {
		fmt.Printf("%-12s %4d products  (last scraped %s)\n", c.Category, c.Products, c.LastScrapedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
