// Package models defines the wire-level types exchanged with the SevenTour
// backend. All of them mirror the backend's JSON contract; fields are replaced
// wholesale, never patched.
package models

// User is a read-only snapshot of the authenticated user's profile.
type User struct {
	PK              int64   `json:"pk"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name,omitempty"`
	LastName        string  `json:"last_name,omitempty"`
	Role            string  `json:"role,omitempty"`
	ProfilePhotoURL *string `json:"profile_photo_url,omitempty"`
	ReferralCode    string  `json:"referral_code,omitempty"`
}

// Country is a destination country offered by the agency.
type Country struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	CountryCode *string `json:"country_code"`
}

// Destination is a city or region inside a country.
type Destination struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CountryID   int64   `json:"country_id"`
	CountryName string  `json:"country_name"`
}

// TourPackage is a bookable tour offering.
type TourPackage struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Country         *Country      `json:"country"`
	Destinations    []Destination `json:"destinations"`
	VisaType        string        `json:"visa_type"`
	VisaTypeDisplay string        `json:"visa_type_display"`
	Price           string        `json:"price"`
	Highlights      string        `json:"highlights"`
	Inclusions      string        `json:"inclusions"`
	Exclusions      string        `json:"exclusions"`
	DurationDays    *int          `json:"duration_days"`
	MainImage       *string       `json:"main_image"`
	IsActive        bool          `json:"is_active"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}

// Paginated list envelopes. The backend paginates every list endpoint with
// the same shape: total count plus next/previous page URLs.

type TourPackagePage struct {
	Count    int64         `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []TourPackage `json:"results"`
}

type CountryPage struct {
	Count    int64     `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Country `json:"results"`
}

type DestinationPage struct {
	Count    int64         `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []Destination `json:"results"`
}
