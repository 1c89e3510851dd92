package scraper

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"mspro-labs/catalog-scraper/internal/config"
)

// cardHTML renders one product card shaped like the demo catalog markup.
func cardHTML(title, price, reviews string, stars int) string {
	var spans strings.Builder
	for i := 0; i < stars; i++ {
		spans.WriteString(`<span class="ws-icon ws-icon-star"></span>`)
	}
	return fmt.Sprintf(`
<div class="col-md-4">
  <div class="card thumbnail">
    <div class="card-body">
      <div class="caption">
        <h4 class="price float-end card-title pull-right">%s</h4>
        <h4><a href="/product/1" class="title" title="%s">%.10s...</a></h4>
        <p class="description card-text">  %s, 14", 4GB, 128GB SSD  </p>
      </div>
      <div class="ratings">
        <p class="review-count float-end">%s</p>
        <p data-rating="%d">%s</p>
      </div>
    </div>
  </div>
</div>`, price, title, title, title, reviews, stars, spans.String())
}

func catalogPage(cards ...string) string {
	return "<html><body><div class=\"row\">" + strings.Join(cards, "\n") + "</div></body></html>"
}

func TestParseSnapshot(t *testing.T) {
	html := catalogPage(
		cardHTML("Asus VivoBook X441NA-GA190", "$295.99", "14 reviews", 3),
		cardHTML("Lenovo ThinkPad", "$1139.54", "12 reviews", 4),
		cardHTML("Acer Aspire", "$19.99", "0 reviews", 0),
	)

	products, err := ParseSnapshot(html, config.Default())
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("Expected 3 products, got %d", len(products))
	}

	p := products[0]
	if p.Title != "Asus VivoBook X441NA-GA190" {
		t.Errorf("Title should come from the title attribute, got '%s'", p.Title)
	}
	if p.Description != `Asus VivoBook X441NA-GA190, 14", 4GB, 128GB SSD` {
		t.Errorf("Description wrong: got '%s'", p.Description)
	}
	if p.Price != 295.99 {
		t.Errorf("Price wrong: expected 295.99, got %f", p.Price)
	}
	if p.Rating != 3 || p.NumOfReviews != 14 {
		t.Errorf("Rating/reviews wrong: got %d/%d", p.Rating, p.NumOfReviews)
	}

	if products[1].Rating != 4 || products[1].NumOfReviews != 12 || products[1].Price != 1139.54 {
		t.Errorf("Second product wrong: %+v", products[1])
	}
	if products[2].Rating != 0 || products[2].Price != 19.99 {
		t.Errorf("Third product wrong: %+v", products[2])
	}
}

func TestParseSnapshotNoCards(t *testing.T) {
	products, err := ParseSnapshot(catalogPage(), config.Default())
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("Expected no products, got %d", len(products))
	}
}

func TestExtractFailures(t *testing.T) {
	testCases := []struct {
		name  string
		html  string
		field string
	}{
		{"bad price", cardHTML("A", "call us", "3 reviews", 1), "price"},
		{"bad reviews", cardHTML("A", "$1.00", "many reviews", 1), "num_of_reviews"},
		{"empty reviews", cardHTML("A", "$1.00", "", 1), "num_of_reviews"},
		{"empty title", cardHTML("", "$1.00", "3 reviews", 1), "title"},
		{"missing description", strings.Replace(cardHTML("A", "$1.00", "3 reviews", 1), `class="description card-text"`, `class="card-text"`, 1), "description"},
	}

	for _, tc := range testCases {
		_, err := ParseSnapshot(catalogPage(cardHTML("Good", "$2.00", "1 reviews", 5), tc.html), config.Default())
		if err == nil {
			t.Errorf("%s: expected an error", tc.name)
			continue
		}
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Errorf("%s: expected a FieldError, got %v", tc.name, err)
			continue
		}
		if fe.Field != tc.field {
			t.Errorf("%s: expected field %s, got %s", tc.name, tc.field, fe.Field)
		}
		if !strings.Contains(err.Error(), "card 1") {
			t.Errorf("%s: error should name the failing card: %v", tc.name, err)
		}
	}
}

func TestExtractMissingAttribute(t *testing.T) {
	html := strings.Replace(cardHTML("A", "$1.00", "3 reviews", 1), `title="A"`, "", 1)
	_, err := ParseSnapshot(catalogPage(html), config.Default())
	if !errors.Is(err, ErrMissing) {
		t.Errorf("expected ErrMissing, got %v", err)
	}
}

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{"$19.99", 19.99},
		{"$1139.54", 1139.54},
		{" $24 ", 24},
		{"19.99", 19.99},
	}

	for _, tc := range testCases {
		got, err := parsePrice(tc.input, "$")
		if err != nil {
			t.Errorf("parsePrice(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("parsePrice(%q): expected %f, got %f", tc.input, tc.expected, got)
		}
	}

	if _, err := parsePrice("Free", "$"); err == nil {
		t.Error("parsePrice(\"Free\") should fail")
	}
}

func TestParseReviewCount(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"12 reviews", 12},
		{"1 review", 1},
		{"  7   reviews ", 7},
	}

	for _, tc := range testCases {
		got, err := parseReviewCount(tc.input)
		if err != nil || got != tc.expected {
			t.Errorf("parseReviewCount(%q) = %d, %v; want %d", tc.input, got, err, tc.expected)
		}
	}
}
