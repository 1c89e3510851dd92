package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
)

// ErrMissing is returned when a card lacks an expected sub-element or attribute.
var ErrMissing = errors.New("not found in card")

// Card is one product card as seen by the extractor. Every lookup is relative
// to the card and returns immediately; nothing here waits for the DOM.
type Card interface {
	// Text returns the visible text of the first element matching selector.
	Text(selector string) (string, error)
	// Attr returns an attribute of the first element matching selector.
	Attr(selector, name string) (string, error)
	// Count returns the number of elements matching selector.
	Count(selector string) (int, error)
}

// rodCard is a live card handle in the browser page.
type rodCard struct {
	el *rod.Element
}

func (c rodCard) first(selector string) (*rod.Element, error) {
	has, el, err := c.el.Has(selector)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("%s: %w", selector, ErrMissing)
	}
	return el, nil
}

func (c rodCard) Text(selector string) (string, error) {
	el, err := c.first(selector)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c rodCard) Attr(selector, name string) (string, error) {
	el, err := c.first(selector)
	if err != nil {
		return "", err
	}
	val, err := el.Attribute(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", fmt.Errorf("%s[%s]: %w", selector, name, ErrMissing)
	}
	return *val, nil
}

func (c rodCard) Count(selector string) (int, error) {
	els, err := c.el.Elements(selector)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

// domCard is a card parsed from a static HTML snapshot.
type domCard struct {
	sel *goquery.Selection
}

func (c domCard) first(selector string) (*goquery.Selection, error) {
	s := c.sel.Find(selector).First()
	if s.Length() == 0 {
		return nil, fmt.Errorf("%s: %w", selector, ErrMissing)
	}
	return s, nil
}

func (c domCard) Text(selector string) (string, error) {
	s, err := c.first(selector)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s.Text()), nil
}

func (c domCard) Attr(selector, name string) (string, error) {
	s, err := c.first(selector)
	if err != nil {
		return "", err
	}
	val, ok := s.Attr(name)
	if !ok {
		return "", fmt.Errorf("%s[%s]: %w", selector, name, ErrMissing)
	}
	return val, nil
}

func (c domCard) Count(selector string) (int, error) {
	return c.sel.Find(selector).Length(), nil
}

// CardsFromHTML returns the product cards of a saved page, in document order.
func CardsFromHTML(html, cardSelector string) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var cards []Card
	doc.Find(cardSelector).Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, domCard{sel: s})
	})
	return cards, nil
}
