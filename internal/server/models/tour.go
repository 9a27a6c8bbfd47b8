package models

import "time"

// Country is a destination country the agency sells tours to.
type Country struct {
	ID          int64
	Name        string
	CountryCode *string
}

// Destination is a city or region inside a country.
type Destination struct {
	ID          int64
	Name        string
	Description *string
	CountryID   int64
	CountryName string
}

// TourPackage is a bookable tour offering. Price is kept as a string to
// preserve the decimal representation end to end.
type TourPackage struct {
	ID           int64
	Title        string
	Description  string
	CountryID    int64
	VisaType     string
	Price        string
	Highlights   string
	Inclusions   string
	Exclusions   string
	DurationDays *int
	MainImage    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Country      *Country
	Destinations []Destination
}

// PackageFilter selects tour packages for listing. Zero values mean
// "no constraint". Page numbers are 1-based.
type PackageFilter struct {
	CountryID int64
	VisaType  string
	PriceMin  string
	PriceMax  string
	Search    string
	Ordering  string
	Page      int
	PageSize  int
}
