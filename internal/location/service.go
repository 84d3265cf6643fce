package location

import (
	"context"
	"encoding/json"

	"github.com/suka712/anvago-travel-planning/internal/db"

	"github.com/jackc/pgx/v5"
)

const locationColumns = `id, name, name_local, description, description_short, city, category,
	       latitude, longitude, address, tags, image_url, price_level, rating,
	       review_count, avg_duration_mins, opening_hours, is_popular, is_hidden_gem, is_verified, created_at`

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

type SearchParams struct {
	City     string
	Category string
	Query    string
}

// Search lists catalog entries, best-rated first. Empty params are
// no-ops so the same statement serves browse and filtered search.
func (s *Service) Search(ctx context.Context, params SearchParams) ([]Location, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		WHERE ($1 = '' OR city = $1)
		  AND ($2 = '' OR category = $2)
		  AND ($3 = '' OR name ILIKE '%'||$3||'%' OR name_local ILIKE '%'||$3||'%')
		ORDER BY rating DESC
		LIMIT 50
	`, params.City, params.Category, params.Query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocations(rows)
}

func (s *Service) Popular(ctx context.Context, city string) ([]Location, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations
		WHERE city = $1 AND is_popular
		ORDER BY rating DESC
	`, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocations(rows)
}

func (s *Service) Get(ctx context.Context, id string) (Location, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+locationColumns+`
		FROM locations WHERE id = $1
	`, id)
	return scanLocation(row)
}

func scanLocations(rows pgx.Rows) ([]Location, error) {
	var locations []Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func scanLocation(row pgx.Row) (Location, error) {
	var loc Location
	var hours []byte
	if err := row.Scan(&loc.ID, &loc.Name, &loc.NameLocal, &loc.Description, &loc.DescriptionShort,
		&loc.City, &loc.Category, &loc.Latitude, &loc.Longitude, &loc.Address, &loc.Tags,
		&loc.ImageURL, &loc.PriceLevel, &loc.Rating, &loc.ReviewCount, &loc.AvgDurationMins,
		&hours, &loc.IsPopular, &loc.IsHiddenGem, &loc.IsVerified, &loc.CreatedAt); err != nil {
		return Location{}, err
	}
	if len(hours) > 0 {
		_ = json.Unmarshal(hours, &loc.OpeningHours)
	}
	return loc, nil
}
