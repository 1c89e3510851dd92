package scraper

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"mspro-labs/catalog-scraper/internal/catalog"
	"mspro-labs/catalog-scraper/internal/config"
)

// Harvester loads a category page, reveals every product on it and returns
// the product cards.
type Harvester struct {
	page *rod.Page
	cfg  *config.SiteConfig
}

func NewHarvester(page *rod.Page, cfg *config.SiteConfig) *Harvester {
	return &Harvester{page: page, cfg: cfg}
}

// Harvest returns the product cards of one category in document order.
func (h *Harvester) Harvest(ctx context.Context, categoryPath string) ([]Card, error) {
	page := h.page.Context(ctx)
	url := h.cfg.BaseURL + categoryPath

	logger.Printf("Navigating to: %s", url)
	if err := h.navigate(page, url); err != nil {
		return nil, err
	}

	if err := h.openCategoryLink(page, categoryPath); err != nil {
		return nil, err
	}

	// Cookie Consent
	if el, ok := h.waitClickable(page, h.cfg.Selectors.CookieButton); ok {
		h.click(el, "cookie banner")
	}

	clicks := 0
	for {
		el, ok := h.waitClickable(page, h.cfg.Selectors.LoadMore)
		if !ok || !h.click(el, "load more") {
			break
		}
		clicks++
	}
	logger.Printf("Load more clicked %d time(s)", clicks)

	els, err := page.Elements(h.cfg.Selectors.ProductCard)
	if err != nil {
		return nil, fmt.Errorf("failed to collect product cards: %w", err)
	}

	cards := make([]Card, len(els))
	for i, el := range els {
		cards[i] = rodCard{el: el}
	}
	logger.Printf("Found %d product cards", len(cards))
	return cards, nil
}

func (h *Harvester) navigate(page *rod.Page, url string) error {
	timed := page.Timeout(h.cfg.NavTimeout)
	defer timed.CancelTimeout()

	if err := timed.Navigate(url); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	if err := timed.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s failed: %w", url, err)
	}
	return nil
}

// openCategoryLink follows the sidebar link named after the category, if the
// page has one.
func (h *Harvester) openCategoryLink(page *rod.Page, categoryPath string) error {
	text := catalog.LinkText(categoryPath)
	has, link, err := page.HasR("a", `^\s*`+regexp.QuoteMeta(text)+`\s*$`)
	if err != nil {
		return fmt.Errorf("looking up link %q failed: %w", text, err)
	}
	if !has {
		return nil
	}

	logger.Printf("Following link: %s", text)
	timed := page.Timeout(h.cfg.NavTimeout)
	defer timed.CancelTimeout()

	// Returns once the next page has loaded or the timeout expires
	wait := timed.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := link.Context(timed.GetContext()).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("clicking link %q failed: %w", text, err)
	}
	wait()
	return page.GetContext().Err()
}

// waitClickable polls for a visible, enabled element for at most the
// configured wait timeout. Not finding one is a normal outcome.
func (h *Harvester) waitClickable(page *rod.Page, selector string) (*rod.Element, bool) {
	if selector == "" {
		return nil, false
	}

	timed := page.Timeout(h.cfg.WaitTimeout)
	defer timed.CancelTimeout()

	el, err := timed.Element(selector)
	if err != nil {
		return nil, false
	}
	if err := el.WaitVisible(); err != nil {
		return nil, false
	}
	if err := el.WaitEnabled(); err != nil {
		return nil, false
	}
	return el.Context(page.GetContext()), true
}

// click reports whether the click went through. Failures are expected when
// a control disappears between the poll and the click.
func (h *Harvester) click(el *rod.Element, what string) bool {
	timed := el.Timeout(h.cfg.WaitTimeout)
	defer timed.CancelTimeout()

	if err := timed.Click(proto.InputMouseButtonLeft, 1); err != nil {
		h.debugf("Clicking %s failed: %v", what, err)
		return false
	}
	return true
}

func (h *Harvester) debugf(format string, args ...any) {
	if h.cfg.Debug {
		logger.Printf(format, args...)
	}
}
