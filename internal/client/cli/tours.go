package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seventour/seventour/internal/client/api"
	"github.com/seventour/seventour/internal/client/models"
)

// Tours lists tour packages with optional filters. Filters are entered as a
// single line of key=value pairs, e.g.
//
//	country=3 visa=on_arrival price_max=2000 search=bali page=2
//
// An empty line lists the first page unfiltered.
func (a *App) Tours(ctx context.Context) error {
	line, err := getSimpleText(a.reader, "Filters (key=value, empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	query, err := parsePackageQuery(line)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	page, err := a.api.TourPackages(ctx, query)
	if err != nil {
		surfaceError(err)
		return err
	}

	printPackagePage(page)
	return nil
}

// TourDetail shows a single tour package by id.
func (a *App) TourDetail(ctx context.Context, id int64) error {
	pkg, err := a.api.TourPackage(ctx, id)
	if err != nil {
		surfaceError(err)
		return err
	}

	fmt.Printf("#%d %s\n", pkg.ID, pkg.Title)
	fmt.Printf("  %s  $%s", packageLocation(pkg), pkg.Price)
	if pkg.DurationDays != nil {
		fmt.Printf("  %d days", *pkg.DurationDays)
	}
	fmt.Println()
	if pkg.VisaTypeDisplay != "" {
		fmt.Println("  Visa:", pkg.VisaTypeDisplay)
	}
	if pkg.Description != "" {
		fmt.Println(" ", pkg.Description)
	}
	if pkg.Highlights != "" {
		fmt.Println("  Highlights:", pkg.Highlights)
	}
	if pkg.Inclusions != "" {
		fmt.Println("  Included:", pkg.Inclusions)
	}
	if pkg.Exclusions != "" {
		fmt.Println("  Not included:", pkg.Exclusions)
	}
	return nil
}

func (a *App) Countries(ctx context.Context) error {
	page, err := a.api.Countries(ctx, "")
	if err != nil {
		surfaceError(err)
		return err
	}
	fmt.Printf("Countries (%d):\n", page.Count)
	for _, c := range page.Results {
		code := ""
		if c.CountryCode != nil {
			code = " (" + *c.CountryCode + ")"
		}
		fmt.Printf("  #%d %s%s\n", c.ID, c.Name, code)
	}
	return nil
}

func (a *App) Destinations(ctx context.Context) error {
	page, err := a.api.Destinations(ctx, 0)
	if err != nil {
		surfaceError(err)
		return err
	}
	fmt.Printf("Destinations (%d):\n", page.Count)
	for _, d := range page.Results {
		fmt.Printf("  #%d %s, %s\n", d.ID, d.Name, d.CountryName)
	}
	return nil
}

func parsePackageQuery(line string) (api.PackageQuery, error) {
	var q api.PackageQuery
	for _, tok := range strings.Fields(line) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return q, fmt.Errorf("malformed filter %q, expected key=value", tok)
		}
		switch key {
		case "country":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return q, fmt.Errorf("country must be a numeric id: %q", value)
			}
			q.CountryID = id
		case "visa":
			q.VisaType = value
		case "price_min":
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return q, fmt.Errorf("price_min must be a number: %q", value)
			}
			q.PriceMin = value
		case "price_max":
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return q, fmt.Errorf("price_max must be a number: %q", value)
			}
			q.PriceMax = value
		case "search":
			q.Search = value
		case "order":
			q.Ordering = value
		case "page":
			n, err := strconv.Atoi(value)
			if err != nil {
				return q, fmt.Errorf("page must be a number: %q", value)
			}
			q.Page = n
		default:
			return q, fmt.Errorf("unknown filter %q", key)
		}
	}
	return q, nil
}

func packageLocation(pkg *models.TourPackage) string {
	parts := make([]string, 0, len(pkg.Destinations)+1)
	for _, d := range pkg.Destinations {
		parts = append(parts, d.Name)
	}
	if pkg.Country != nil {
		parts = append(parts, pkg.Country.Name)
	}
	return strings.Join(parts, ", ")
}

func printPackagePage(page *models.TourPackagePage) {
	fmt.Printf("Tour packages (%d total):\n", page.Count)
	for _, pkg := range page.Results {
		fmt.Printf("  #%d %-30s %s  $%s\n", pkg.ID, pkg.Title, packageLocation(&pkg), pkg.Price)
	}
	if page.Next != nil {
		fmt.Println("More results available, use page=N to continue.")
	}
}
