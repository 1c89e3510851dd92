package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"mspro-labs/catalog-scraper/internal/config"
	"mspro-labs/catalog-scraper/internal/models"
)

// FieldError reports which product field could not be extracted from a card.
type FieldError struct {
	Field    string
	Selector string
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (%s): %v", e.Field, e.Selector, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

type rule int

const (
	ruleText rule = iota
	ruleAttr
	ruleCount
)

// locator describes where one product field lives inside a card and how the
// raw value is turned into the typed field.
type locator struct {
	field    string
	selector string
	rule     rule
	attr     string
	set      func(p *models.Product, raw string) error
}

// Extractor maps product cards to Product records.
type Extractor struct {
	locators []locator
}

// NewExtractor builds the field table from the configured selectors.
func NewExtractor(cfg *config.SiteConfig) *Extractor {
	sel := cfg.Selectors
	currency := cfg.CurrencySymbol

	return &Extractor{locators: []locator{
		{field: "title", selector: sel.Title, rule: ruleAttr, attr: sel.TitleAttr,
			set: func(p *models.Product, raw string) error {
				if strings.TrimSpace(raw) == "" {
					return fmt.Errorf("empty title")
				}
				p.Title = raw
				return nil
			}},
		{field: "description", selector: sel.Description, rule: ruleText,
			set: func(p *models.Product, raw string) error {
				p.Description = raw
				return nil
			}},
		{field: "price", selector: sel.Price, rule: ruleText,
			set: func(p *models.Product, raw string) (err error) {
				p.Price, err = parsePrice(raw, currency)
				return err
			}},
		{field: "rating", selector: sel.Rating, rule: ruleCount,
			set: func(p *models.Product, raw string) (err error) {
				p.Rating, err = strconv.Atoi(raw)
				return err
			}},
		{field: "num_of_reviews", selector: sel.ReviewCount, rule: ruleText,
			set: func(p *models.Product, raw string) (err error) {
				p.NumOfReviews, err = parseReviewCount(raw)
				return err
			}},
	}}
}

// Extract reads every field of one card. Any failure rejects the whole card.
func (x *Extractor) Extract(card Card) (models.Product, error) {
	var p models.Product
	for _, loc := range x.locators {
		raw, err := loc.read(card)
		if err == nil {
			err = loc.set(&p, raw)
		}
		if err != nil {
			return models.Product{}, &FieldError{Field: loc.field, Selector: loc.selector, Err: err}
		}
	}
	return p, nil
}

// ExtractAll extracts cards in order and stops at the first failing card.
func (x *Extractor) ExtractAll(cards []Card) ([]models.Product, error) {
	products := make([]models.Product, 0, len(cards))
	for i, card := range cards {
		p, err := x.Extract(card)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (loc locator) read(card Card) (string, error) {
	switch loc.rule {
	case ruleAttr:
		return card.Attr(loc.selector, loc.attr)
	case ruleCount:
		n, err := card.Count(loc.selector)
		return strconv.Itoa(n), err
	default:
		return card.Text(loc.selector)
	}
}

// parsePrice strips the currency symbol and parses the rest as a decimal.
// Text without the symbol is parsed as-is.
func parsePrice(text, currency string) (float64, error) {
	val := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), currency))
	price, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", text, err)
	}
	return price, nil
}

// parseReviewCount reads the leading number of a "<N> reviews" label.
func parseReviewCount(text string) (int, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return 0, fmt.Errorf("empty review count")
	}
	n, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, fmt.Errorf("invalid review count %q: %w", text, err)
	}
	return n, nil
}
