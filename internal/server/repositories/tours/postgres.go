package tours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seventour/seventour/internal/common"
	"github.com/seventour/seventour/internal/dbx"
	"github.com/seventour/seventour/internal/server/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// orderings maps the public ordering keys to SQL. Anything else falls back
// to newest-first.
var orderings = map[string]string{
	"price":          "p.price ASC",
	"-price":         "p.price DESC",
	"duration_days":  "p.duration_days ASC NULLS LAST",
	"-duration_days": "p.duration_days DESC NULLS LAST",
	"created_at":     "p.created_at ASC",
	"-created_at":    "p.created_at DESC",
}

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func pageBounds(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

// buildPackageWhere assembles the WHERE clause and its arguments for a
// package filter. Only active packages are ever listed.
func buildPackageWhere(f models.PackageFilter) (string, []any) {
	conds := []string{"p.is_active"}
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CountryID > 0 {
		add("p.country_id = $%d", f.CountryID)
	}
	if f.VisaType != "" {
		add("p.visa_type = $%d", f.VisaType)
	}
	if f.PriceMin != "" {
		add("p.price >= $%d", f.PriceMin)
	}
	if f.PriceMax != "" {
		add("p.price <= $%d", f.PriceMax)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", n, n))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresRepository) ListPackages(ctx context.Context, f models.PackageFilter) ([]*models.TourPackage, int64, error) {
	where, args := buildPackageWhere(f)

	var total int64
	countQuery := `SELECT count(*) FROM tour_packages p ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	orderBy, ok := orderings[f.Ordering]
	if !ok {
		orderBy = "p.created_at DESC"
	}

	limit, offset := pageBounds(f.Page, f.PageSize)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.description, p.country_id, p.visa_type, p.price,
		       p.highlights, p.inclusions, p.exclusions, p.duration_days,
		       p.main_image, p.is_active, p.created_at, p.updated_at,
		       c.name, c.country_code
		FROM tour_packages p
		JOIN countries c ON c.id = p.country_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, orderBy, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var packages []*models.TourPackage
	for rows.Next() {
		p := &models.TourPackage{Country: &models.Country{}}
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CountryID, &p.VisaType,
			&p.Price, &p.Highlights, &p.Inclusions, &p.Exclusions, &p.DurationDays,
			&p.MainImage, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&p.Country.Name, &p.Country.CountryCode); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		p.Country.ID = p.CountryID
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	for _, p := range packages {
		if err := r.loadDestinations(ctx, p); err != nil {
			return nil, 0, err
		}
	}

	return packages, total, nil
}

func (r *PostgresRepository) GetPackage(ctx context.Context, id int64) (*models.TourPackage, error) {
	query := `
		SELECT p.id, p.title, p.description, p.country_id, p.visa_type, p.price,
		       p.highlights, p.inclusions, p.exclusions, p.duration_days,
		       p.main_image, p.is_active, p.created_at, p.updated_at,
		       c.name, c.country_code
		FROM tour_packages p
		JOIN countries c ON c.id = p.country_id
		WHERE p.id = $1 AND p.is_active
	`
	p := &models.TourPackage{Country: &models.Country{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description,
		&p.CountryID, &p.VisaType, &p.Price, &p.Highlights, &p.Inclusions,
		&p.Exclusions, &p.DurationDays, &p.MainImage, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt, &p.Country.Name, &p.Country.CountryCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Country.ID = p.CountryID

	if err := r.loadDestinations(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) loadDestinations(ctx context.Context, p *models.TourPackage) error {
	query := `
		SELECT d.id, d.name, d.description, d.country_id, c.name
		FROM package_destinations pd
		JOIN destinations d ON d.id = pd.destination_id
		JOIN countries c ON c.id = d.country_id
		WHERE pd.package_id = $1
		ORDER BY d.name
	`
	rows, err := r.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CountryID, &d.CountryName); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		p.Destinations = append(p.Destinations, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListCountries(ctx context.Context, search string, page, pageSize int) ([]models.Country, int64, error) {
	where := ""
	var args []any
	if search != "" {
		where = "WHERE name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM countries `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	limit, offset := pageBounds(page, pageSize)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, name, country_code FROM countries
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var countries []models.Country
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryCode); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return countries, total, nil
}

func (r *PostgresRepository) ListDestinations(ctx context.Context, countryID int64, page, pageSize int) ([]models.Destination, int64, error) {
	where := ""
	var args []any
	if countryID > 0 {
		where = "WHERE d.country_id = $1"
		args = append(args, countryID)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM destinations d `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	limit, offset := pageBounds(page, pageSize)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT d.id, d.name, d.description, d.country_id, c.name
		FROM destinations d
		JOIN countries c ON c.id = d.country_id
		%s
		ORDER BY d.name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var destinations []models.Destination
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CountryID, &d.CountryName); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		destinations = append(destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return destinations, total, nil
}
