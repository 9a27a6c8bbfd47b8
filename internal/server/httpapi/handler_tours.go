package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seventour/seventour/internal/common"
	"github.com/seventour/seventour/internal/server/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// visaTypeLabels maps stored visa type codes to their display names.
var visaTypeLabels = map[string]string{
	"VISA_FREE":    "Visa Free",
	"E_VISA":       "E-Visa",
	"ON_ARRIVAL":   "On Arrival",
	"STICKER_VISA": "Sticker Visa",
}

func visaTypeDisplay(code string) string {
	if label, ok := visaTypeLabels[code]; ok {
		return label
	}
	return code
}

// countryResponse, destinationResponse, and packageResponse are the wire
// shapes of the catalog entities.
type countryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	CountryCode *string `json:"country_code"`
}

type destinationResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CountryID   int64   `json:"country_id"`
	CountryName string  `json:"country_name"`
}

type packageResponse struct {
	ID              int64                 `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Country         *countryResponse      `json:"country"`
	Destinations    []destinationResponse `json:"destinations"`
	VisaType        string                `json:"visa_type"`
	VisaTypeDisplay string                `json:"visa_type_display"`
	Price           string                `json:"price"`
	Highlights      string                `json:"highlights"`
	Inclusions      string                `json:"inclusions"`
	Exclusions      string                `json:"exclusions"`
	DurationDays    *int                  `json:"duration_days"`
	MainImage       *string               `json:"main_image"`
	IsActive        bool                  `json:"is_active"`
	CreatedAt       string                `json:"created_at"`
	UpdatedAt       string                `json:"updated_at"`
}

func toCountryResponse(c models.Country) countryResponse {
	return countryResponse{ID: c.ID, Name: c.Name, CountryCode: c.CountryCode}
}

func toDestinationResponse(d models.Destination) destinationResponse {
	return destinationResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CountryID:   d.CountryID,
		CountryName: d.CountryName,
	}
}

func toPackageResponse(p *models.TourPackage) packageResponse {
	resp := packageResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		VisaType:        p.VisaType,
		VisaTypeDisplay: visaTypeDisplay(p.VisaType),
		Price:           p.Price,
		Highlights:      p.Highlights,
		Inclusions:      p.Inclusions,
		Exclusions:      p.Exclusions,
		DurationDays:    p.DurationDays,
		MainImage:       p.MainImage,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
		Destinations:    []destinationResponse{},
	}
	if p.Country != nil {
		c := toCountryResponse(*p.Country)
		resp.Country = &c
	}
	for _, d := range p.Destinations {
		resp.Destinations = append(resp.Destinations, toDestinationResponse(d))
	}
	return resp
}

// parsePaging reads page and page_size query parameters, clamped the same way
// the repository clamps them so the next/previous links stay consistent.
func parsePaging(q url.Values) (page, pageSize int) {
	page, _ = strconv.Atoi(q.Get("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(q.Get("page_size"))
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// pageURL rebuilds the request URL with a different page number, producing an
// absolute link.
func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	abs := fmt.Sprintf("%s://%s%s", scheme, r.Host, u.RequestURI())
	return &abs
}

// paginate builds the list envelope for the current request.
func paginate(r *http.Request, page, pageSize int, total int64, results any) listEnvelope {
	env := listEnvelope{Count: total, Results: results}
	if int64(page)*int64(pageSize) < total {
		env.Next = pageURL(r, page+1)
	}
	if page > 1 {
		env.Previous = pageURL(r, page-1)
	}
	return env
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := parsePaging(q)

	countryID, _ := strconv.ParseInt(q.Get("country_id"), 10, 64)
	filter := models.PackageFilter{
		CountryID: countryID,
		VisaType:  q.Get("visa_type"),
		PriceMin:  q.Get("price_min"),
		PriceMax:  q.Get("price_max"),
		Search:    q.Get("search"),
		Ordering:  q.Get("ordering"),
		Page:      page,
		PageSize:  pageSize,
	}

	packages, total, err := s.tours.ListPackages(r.Context(), filter)
	if err != nil {
		s.logger.Error(r.Context(), "package listing failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	results := make([]packageResponse, 0, len(packages))
	for _, p := range packages {
		results = append(results, toPackageResponse(p))
	}
	writeJSON(w, http.StatusOK, paginate(r, page, pageSize, total, results))
}

func (s *Server) handleGetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}

	p, err := s.tours.GetPackage(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		s.logger.Error(r.Context(), "package lookup failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, toPackageResponse(p))
}

func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := parsePaging(q)

	countries, total, err := s.tours.ListCountries(r.Context(), q.Get("search"), page, pageSize)
	if err != nil {
		s.logger.Error(r.Context(), "country listing failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	results := make([]countryResponse, 0, len(countries))
	for _, c := range countries {
		results = append(results, toCountryResponse(c))
	}
	writeJSON(w, http.StatusOK, paginate(r, page, pageSize, total, results))
}

func (s *Server) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := parsePaging(q)

	countryID, _ := strconv.ParseInt(q.Get("country_id"), 10, 64)
	destinations, total, err := s.tours.ListDestinations(r.Context(), countryID, page, pageSize)
	if err != nil {
		s.logger.Error(r.Context(), "destination listing failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	results := make([]destinationResponse, 0, len(destinations))
	for _, d := range destinations {
		results = append(results, toDestinationResponse(d))
	}
	writeJSON(w, http.StatusOK, paginate(r, page, pageSize, total, results))
}
