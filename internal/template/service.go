package template

import (
	"context"
	"encoding/json"
	"time"

	"github.com/suka712/anvago-travel-planning/internal/db"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 5 * time.Minute

type Service struct {
	db    db.Querier
	cache *redis.Client
}

// NewService builds the template store. cache may be nil; lookups then
// always hit postgres.
func NewService(db db.Querier, cache *redis.Client) *Service {
	return &Service{db: db, cache: cache}
}

// ListByCity returns every active template for the city (canonical
// casing applied), display order ascending, with the full day-by-day
// item sequence attached. An unknown city yields an empty list.
func (s *Service) ListByCity(ctx context.Context, city string) ([]Template, error) {
	city = NormalizeCity(city)

	if cached, ok := s.fromCache(ctx, city); ok {
		return cached, nil
	}

	templates, err := s.loadTemplates(ctx, city)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(ctx, city, templates); err != nil {
		return nil, err
	}

	s.toCache(ctx, city, templates)
	return templates, nil
}

// Suggest ranks the city's templates against the preference query.
func (s *Service) Suggest(ctx context.Context, q Query) ([]Scored, error) {
	templates, err := s.ListByCity(ctx, q.City)
	if err != nil {
		return nil, err
	}
	return Rank(templates, q), nil
}

func (s *Service) loadTemplates(ctx context.Context, city string) ([]Template, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, tagline, cover_image, city, duration_days,
		       target_personas, target_vibes, target_budget, target_interests,
		       highlights, badges, COALESCE(itinerary_id, ''), display_order
		FROM itinerary_templates
		WHERE city = $1 AND is_active
		ORDER BY display_order ASC
	`, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []Template{}
	for rows.Next() {
		var tpl Template
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Tagline, &tpl.CoverImage,
			&tpl.City, &tpl.DurationDays, &tpl.TargetPersonas, &tpl.TargetVibes, &tpl.TargetBudget,
			&tpl.TargetInterests, &tpl.Highlights, &tpl.Badges, &tpl.ItineraryID, &tpl.DisplayOrder); err != nil {
			return nil, err
		}
		tpl.Items = []TemplateItem{}
		templates = append(templates, tpl)
	}
	return templates, nil
}

func (s *Service) loadItems(ctx context.Context, city string, templates []Template) error {
	if len(templates) == 0 {
		return nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT t.id, i.id, i.day_number, i.order_index, i.start_time, i.end_time, i.transport_mode,
		       l.id, l.name, l.category, l.rating, l.avg_duration_mins
		FROM itinerary_templates t
		JOIN itinerary_items i ON i.itinerary_id = t.itinerary_id
		JOIN locations l ON l.id = i.location_id
		WHERE t.city = $1 AND t.is_active
		ORDER BY i.day_number ASC, i.order_index ASC
	`, city)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[string]*Template, len(templates))
	for i := range templates {
		byID[templates[i].ID] = &templates[i]
	}

	for rows.Next() {
		var templateID string
		var item TemplateItem
		if err := rows.Scan(&templateID, &item.ID, &item.DayNumber, &item.OrderIndex,
			&item.StartTime, &item.EndTime, &item.TransportMode,
			&item.LocationID, &item.LocationName, &item.LocationCategory,
			&item.LocationRating, &item.AvgDurationMins); err != nil {
			return err
		}
		if tpl, ok := byID[templateID]; ok {
			tpl.Items = append(tpl.Items, item)
		}
	}
	return nil
}

func (s *Service) fromCache(ctx context.Context, city string) ([]Template, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey(city)).Bytes()
	if err != nil {
		return nil, false
	}
	var templates []Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, false
	}
	return templates, true
}

func (s *Service) toCache(ctx context.Context, city string, templates []Template) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(templates)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, cacheKey(city), raw, cacheTTL).Err()
}

func cacheKey(city string) string {
	return "templates:city:" + city
}
