// Package tours provides persistence for the tour catalog: countries,
// destinations, and tour packages.
package tours

import (
	"context"

	"github.com/seventour/seventour/internal/server/models"
)

// Repository defines read operations over the tour catalog. List operations
// return the page of rows plus the total count matching the filter.
type Repository interface {
	ListPackages(ctx context.Context, f models.PackageFilter) ([]*models.TourPackage, int64, error)
	GetPackage(ctx context.Context, id int64) (*models.TourPackage, error)
	ListCountries(ctx context.Context, search string, page, pageSize int) ([]models.Country, int64, error)
	ListDestinations(ctx context.Context, countryID int64, page, pageSize int) ([]models.Destination, int64, error)
}
