package services

import (
	"context"
	"database/sql"

	"github.com/seventour/seventour/internal/server/models"
	"github.com/seventour/seventour/internal/server/repositories/repomanager"
)

// TourService exposes the read-only tour catalog.
type TourService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTourService(db *sql.DB, m repomanager.RepositoryManager) *TourService {
	return &TourService{db: db, repomanager: m}
}

func (s *TourService) ListPackages(ctx context.Context, f models.PackageFilter) ([]*models.TourPackage, int64, error) {
	repo := s.repomanager.Tours(s.db)
	return repo.ListPackages(ctx, f)
}

func (s *TourService) GetPackage(ctx context.Context, id int64) (*models.TourPackage, error) {
	repo := s.repomanager.Tours(s.db)
	return repo.GetPackage(ctx, id)
}

func (s *TourService) ListCountries(ctx context.Context, search string, page, pageSize int) ([]models.Country, int64, error) {
	repo := s.repomanager.Tours(s.db)
	return repo.ListCountries(ctx, search, page, pageSize)
}

func (s *TourService) ListDestinations(ctx context.Context, countryID int64, page, pageSize int) ([]models.Destination, int64, error) {
	repo := s.repomanager.Tours(s.db)
	return repo.ListDestinations(ctx, countryID, page, pageSize)
}
