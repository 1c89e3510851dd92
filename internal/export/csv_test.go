package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mspro-labs/catalog-scraper/internal/models"
)

func sampleProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			Title:        "Item " + string(rune('A'+i)),
			Description:  "Description, with a comma",
			Price:        float64(i) + 0.99,
			Rating:       i % 6,
			NumOfReviews: i * 3,
		}
	}
	return products
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	products := sampleProducts(9)

	path, err := WriteCSV(dir, "computers/laptops/", products)
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if filepath.Base(path) != "laptops.csv" {
		t.Errorf("unexpected file name %s", path)
	}

	rows := readCSV(t, path)
	if len(rows) != 10 {
		t.Fatalf("expected 1 header + 9 rows, got %d rows", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"title", "description", "price", "rating", "num_of_reviews"}) {
		t.Errorf("unexpected header %v", rows[0])
	}
	for i, p := range products {
		row := rows[i+1]
		if row[0] != p.Title || row[1] != p.Description {
			t.Errorf("row %d out of order or mangled: %v", i, row)
		}
	}
}

func TestWriteCSVHomeCategory(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSV(dir, "", nil)
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if filepath.Base(path) != "home.csv" {
		t.Errorf("expected home.csv, got %s", path)
	}
	// No products still produces a header
	if rows := readCSV(t, path); len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}

func TestWriteCSVTruncates(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteCSV(dir, "phones/", sampleProducts(5)); err != nil {
		t.Fatal(err)
	}
	path, err := WriteCSV(dir, "phones/", sampleProducts(2))
	if err != nil {
		t.Fatal(err)
	}
	if rows := readCSV(t, path); len(rows) != 3 {
		t.Errorf("expected previous content to be replaced, got %d rows", len(rows))
	}
}

func TestWriteNumberFormatting(t *testing.T) {
	var buf bytes.Buffer
	products := []models.Product{
		{Title: "A", Description: "d", Price: 1139.54, Rating: 4, NumOfReviews: 12},
		{Title: "B", Description: "d", Price: 24, Rating: 0, NumOfReviews: 0},
	}
	if err := Write(&buf, products); err != nil {
		t.Fatal(err)
	}

	want := "title,description,price,rating,num_of_reviews\n" +
		"A,d,1139.54,4,12\n" +
		"B,d,24,0,0\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}
