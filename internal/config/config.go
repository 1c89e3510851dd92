package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds infrastructure config from standard env vars
type AppConfig struct {
	DBPath     string // Empty disables the SQLite store
	ConfigPath string // Path to the YAML config file
	OutputDir  string // Directory the per-category CSV files are written to
}

// SiteConfig holds all target-site specific settings (from YAML)
type SiteConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Categories     []string      `yaml:"categories"`
	WaitTimeout    time.Duration `yaml:"wait_timeout"`
	NavTimeout     time.Duration `yaml:"nav_timeout"`
	Headless       bool          `yaml:"headless"`
	Debug          bool          `yaml:"debug"`
	CurrencySymbol string        `yaml:"currency_symbol"`
	Selectors      Selectors     `yaml:"selectors"`
}

type Selectors struct {
	CookieButton string `yaml:"cookie_button"`
	LoadMore     string `yaml:"load_more"`
	ProductCard  string `yaml:"product_card"`
	Title        string `yaml:"title"`
	TitleAttr    string `yaml:"title_attr"`
	Description  string `yaml:"description"`
	Price        string `yaml:"price"`
	Rating       string `yaml:"rating"`
	ReviewCount  string `yaml:"review_count"`
}

// DefaultBaseURL is the catalog root every category path is appended to.
const DefaultBaseURL = "https://webscraper.io/test-sites/e-commerce/more/"

// DefaultCategories are the six catalog sections scraped by a full run.
var DefaultCategories = []string{
	"",
	"computers/",
	"computers/laptops/",
	"computers/tablets/",
	"phones/",
	"phones/touch/",
}

// Default returns the built-in site configuration for the demo catalog.
func Default() *SiteConfig {
	return &SiteConfig{
		BaseURL:        DefaultBaseURL,
		Categories:     append([]string(nil), DefaultCategories...),
		WaitTimeout:    2 * time.Second,
		NavTimeout:     30 * time.Second,
		Headless:       true,
		CurrencySymbol: "$",
		Selectors: Selectors{
			CookieButton: "#closeCookieBanner",
			LoadMore:     ".ecomerce-items-scroll-more",
			ProductCard:  ".thumbnail",
			Title:        ".title",
			TitleAttr:    "title",
			Description:  ".description",
			Price:        ".price",
			Rating:       "span",
			ReviewCount:  ".review-count",
		},
	}
}

// GetAppConfig reads basic infrastructure settings from environment variables.
func GetAppConfig() (AppConfig, error) {
	configPath := os.Getenv("CONFIG_PATH")
	outputDir := os.Getenv("OUTPUT_DIR")

	// Set defaults if not provided
	if configPath == "" {
		configPath = "config.yaml"
	}
	if outputDir == "" {
		outputDir = "."
	}

	return AppConfig{
		DBPath:     os.Getenv("DB_PATH"),
		ConfigPath: configPath,
		OutputDir:  outputDir,
	}, nil
}

// LoadSiteConfig reads the YAML file on top of Default. A missing file is not
// an error: the built-in defaults are returned as-is.
func LoadSiteConfig(path string) (*SiteConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings a scrape run cannot do without.
func (c *SiteConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if len(c.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait_timeout must be positive, got %s", c.WaitTimeout)
	}
	if c.NavTimeout <= 0 {
		return fmt.Errorf("nav_timeout must be positive, got %s", c.NavTimeout)
	}

	required := map[string]string{
		"selectors.product_card": c.Selectors.ProductCard,
		"selectors.title":        c.Selectors.Title,
		"selectors.title_attr":   c.Selectors.TitleAttr,
		"selectors.description":  c.Selectors.Description,
		"selectors.price":        c.Selectors.Price,
		"selectors.rating":       c.Selectors.Rating,
		"selectors.review_count": c.Selectors.ReviewCount,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}
