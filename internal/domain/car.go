package domain

import "time"

type Car struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand"`
	Type            string    `json:"type"`
	DailyPrice      float64   `json:"dailyPrice"`
	PriceWithDriver float64   `json:"priceWithDriver"`
	Featured        bool      `json:"featured"`
	Description     string    `json:"description,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Transmission    string    `json:"transmission,omitempty"`
	FuelType        string    `json:"fuelType,omitempty"`
	Seats           int       `json:"seats,omitempty"`
	Year            int       `json:"year,omitempty"`
	Mileage         string    `json:"mileage,omitempty"`
	Features        []string  `json:"features"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CarSort is the catalog sort order accepted by the list endpoint
type CarSort string

const (
	CarSortPriceAsc  CarSort = "price_asc"
	CarSortPriceDesc CarSort = "price_desc"
	CarSortNameAsc   CarSort = "name_asc"
	CarSortNameDesc  CarSort = "name_desc"
)

// ValidCarSort reports whether s is one of the accepted sort orders
func ValidCarSort(s string) bool {
	switch CarSort(s) {
	case CarSortPriceAsc, CarSortPriceDesc, CarSortNameAsc, CarSortNameDesc:
		return true
	}
	return false
}

// CarFilter captures the catalog list query parameters
type CarFilter struct {
	Search string
	Type   string
	SortBy CarSort
	Page   int
	Limit  int
}
