package models

// Product holds the scraped data for a single catalog card.
type Product struct {
	Title        string
	Description  string
	Price        float64
	Rating       int
	NumOfReviews int
}

// ProductFields are the column names of a Product, in declaration order.
var ProductFields = []string{"title", "description", "price", "rating", "num_of_reviews"}
