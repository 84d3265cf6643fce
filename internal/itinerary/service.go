package itinerary

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/suka712/anvago-travel-planning/internal/db"
	"github.com/suka712/anvago-travel-planning/internal/planner"
	"github.com/suka712/anvago-travel-planning/internal/shared/geo"
	"github.com/suka712/anvago-travel-planning/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// areaDelta is the half-width of the nearby-alternatives bounding box,
// in degrees (~2km at this latitude).
const areaDelta = 0.02

// defaultDayStart is 09:00, used when a day's first item has no stored
// start time.
const defaultDayStart = 540

var (
	ErrForbidden  = errors.New("itinerary does not belong to caller")
	ErrBadReorder = errors.New("reorder entries do not match stored items")
)

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

// NewService builds the itinerary store. hub may be nil; mutations then
// go unannounced.
func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) Create(ctx context.Context, userID string, input Itinerary) (Itinerary, error) {
	input.ID = uuid.NewString()
	input.UserID = userID
	if input.City == "" {
		input.City = "Danang"
	}
	if input.DurationDays < 1 {
		input.DurationDays = 1
	}
	if input.GeneratedBy == "" {
		input.GeneratedBy = "user"
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO itineraries (id, user_id, title, description, city, duration_days,
			start_date, cover_image, is_template, is_public, generated_by, estimated_budget)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at
	`, input.ID, input.UserID, input.Title, input.Description, input.City, input.DurationDays,
		input.StartDate, input.CoverImage, input.IsTemplate, input.IsPublic, input.GeneratedBy,
		input.EstimatedBudget)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Itinerary{}, err
	}
	input.Items = []Item{}
	return input, nil
}

// ListByUser returns the caller's itineraries, most recently edited
// first, without items.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Itinerary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+itineraryColumns+`
		FROM itineraries WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itineraries := []Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, it)
	}
	return itineraries, nil
}

// Get loads one itinerary with its full item sequence. A private
// non-template itinerary is visible to its owner only.
func (s *Service) Get(ctx context.Context, id, viewerID string) (Itinerary, error) {
	it, err := s.header(ctx, id)
	if err != nil {
		return Itinerary{}, err
	}
	if !canView(it, viewerID) {
		return Itinerary{}, ErrForbidden
	}

	it.Items, err = s.items(ctx, id)
	if err != nil {
		return Itinerary{}, err
	}
	return it, nil
}

type UpdateRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	City            *string    `json:"city"`
	DurationDays    *int       `json:"duration_days"`
	StartDate       *time.Time `json:"start_date"`
	CoverImage      *string    `json:"cover_image"`
	IsPublic        *bool      `json:"is_public"`
	EstimatedBudget *float64   `json:"estimated_budget"`
}

func (s *Service) Update(ctx context.Context, id, userID string, patch UpdateRequest) (Itinerary, error) {
	it, err := s.owned(ctx, id, userID)
	if err != nil {
		return Itinerary{}, err
	}

	if patch.Title != nil {
		it.Title = *patch.Title
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.City != nil {
		it.City = *patch.City
	}
	if patch.DurationDays != nil && *patch.DurationDays > 0 {
		it.DurationDays = *patch.DurationDays
	}
	if patch.StartDate != nil {
		it.StartDate = patch.StartDate
	}
	if patch.CoverImage != nil {
		it.CoverImage = *patch.CoverImage
	}
	if patch.IsPublic != nil {
		it.IsPublic = *patch.IsPublic
	}
	if patch.EstimatedBudget != nil {
		it.EstimatedBudget = *patch.EstimatedBudget
	}

	_, err = s.db.Exec(ctx, `
		UPDATE itineraries
		SET title=$2, description=$3, city=$4, duration_days=$5, start_date=$6,
		    cover_image=$7, is_public=$8, estimated_budget=$9, updated_at=now()
		WHERE id=$1
	`, it.ID, it.Title, it.Description, it.City, it.DurationDays, it.StartDate,
		it.CoverImage, it.IsPublic, it.EstimatedBudget)
	if err != nil {
		return Itinerary{}, err
	}
	return it, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM itineraries WHERE id=$1`, id)
	return err
}

// Duplicate copies a viewable itinerary, items included, into a fresh
// private itinerary owned by the caller.
func (s *Service) Duplicate(ctx context.Context, id, userID string) (Itinerary, error) {
	src, err := s.Get(ctx, id, userID)
	if err != nil {
		return Itinerary{}, err
	}

	dup := src
	dup.ID = uuid.NewString()
	dup.UserID = userID
	dup.Title = src.Title + " (Copy)"
	dup.IsTemplate = false
	dup.IsPublic = false
	dup.GeneratedBy = "duplicate"
	dup.TotalDistance = totalDistance(src.Items)

	row := s.db.QueryRow(ctx, `
		INSERT INTO itineraries (id, user_id, title, description, city, duration_days,
			start_date, cover_image, is_template, is_public, generated_by,
			estimated_budget, total_distance)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at
	`, dup.ID, dup.UserID, dup.Title, dup.Description, dup.City, dup.DurationDays,
		dup.StartDate, dup.CoverImage, dup.IsTemplate, dup.IsPublic, dup.GeneratedBy,
		dup.EstimatedBudget, dup.TotalDistance)
	if err := row.Scan(&dup.CreatedAt, &dup.UpdatedAt); err != nil {
		return Itinerary{}, err
	}

	dup.Items = make([]Item, 0, len(src.Items))
	for _, item := range src.Items {
		item.ID = uuid.NewString()
		item.ItineraryID = dup.ID
		if err := s.insertItem(ctx, item); err != nil {
			return Itinerary{}, err
		}
		dup.Items = append(dup.Items, item)
	}
	return dup, nil
}

// AddItem appends an activity to the end of its day.
func (s *Service) AddItem(ctx context.Context, itineraryID, userID string, item Item) (Item, error) {
	if _, err := s.owned(ctx, itineraryID, userID); err != nil {
		return Item{}, err
	}

	item.ID = uuid.NewString()
	item.ItineraryID = itineraryID
	if item.DayNumber < 1 {
		item.DayNumber = 1
	}

	row := s.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(order_index)+1, 0)
		FROM itinerary_items WHERE itinerary_id=$1 AND day_number=$2
	`, itineraryID, item.DayNumber)
	if err := row.Scan(&item.OrderIndex); err != nil {
		return Item{}, err
	}

	if err := s.insertItem(ctx, item); err != nil {
		return Item{}, err
	}
	if err := s.refreshDistance(ctx, itineraryID); err != nil {
		return Item{}, err
	}
	s.publish(itineraryID, "item.added", item)
	return item, nil
}

type ItemPatch struct {
	LocationID        *string  `json:"location_id"`
	StartTime         *string  `json:"start_time"`
	EndTime           *string  `json:"end_time"`
	Notes             *string  `json:"notes"`
	TransportMode     *string  `json:"transport_mode"`
	TransportDuration *int     `json:"transport_duration"`
	TransportCost     *float64 `json:"transport_cost"`
}

func (s *Service) UpdateItem(ctx context.Context, itineraryID, itemID, userID string, patch ItemPatch) (Item, error) {
	if _, err := s.owned(ctx, itineraryID, userID); err != nil {
		return Item{}, err
	}

	row := s.db.QueryRow(ctx, `
		SELECT id, itinerary_id, location_id, day_number, order_index, start_time,
		       end_time, notes, transport_mode, transport_duration, transport_cost
		FROM itinerary_items WHERE id=$1 AND itinerary_id=$2
	`, itemID, itineraryID)
	var item Item
	if err := row.Scan(&item.ID, &item.ItineraryID, &item.LocationID, &item.DayNumber,
		&item.OrderIndex, &item.StartTime, &item.EndTime, &item.Notes, &item.TransportMode,
		&item.TransportDuration, &item.TransportCost); err != nil {
		return Item{}, err
	}

	if patch.LocationID != nil {
		item.LocationID = *patch.LocationID
	}
	if patch.StartTime != nil {
		item.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		item.EndTime = *patch.EndTime
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.TransportMode != nil {
		item.TransportMode = *patch.TransportMode
	}
	if patch.TransportDuration != nil {
		item.TransportDuration = *patch.TransportDuration
	}
	if patch.TransportCost != nil {
		item.TransportCost = *patch.TransportCost
	}

	_, err := s.db.Exec(ctx, `
		UPDATE itinerary_items
		SET location_id=$2, start_time=$3, end_time=$4, notes=$5,
		    transport_mode=$6, transport_duration=$7, transport_cost=$8
		WHERE id=$1
	`, item.ID, item.LocationID, item.StartTime, item.EndTime, item.Notes,
		item.TransportMode, item.TransportDuration, item.TransportCost)
	if err != nil {
		return Item{}, err
	}

	if err := s.refreshDistance(ctx, itineraryID); err != nil {
		return Item{}, err
	}
	s.publish(itineraryID, "item.updated", item)
	return item, nil
}

// DeleteItem removes one activity and closes the gap it leaves in its
// day's ordering.
func (s *Service) DeleteItem(ctx context.Context, itineraryID, itemID, userID string) error {
	if _, err := s.owned(ctx, itineraryID, userID); err != nil {
		return err
	}

	row := s.db.QueryRow(ctx, `
		SELECT day_number, order_index FROM itinerary_items
		WHERE id=$1 AND itinerary_id=$2
	`, itemID, itineraryID)
	var dayNumber, orderIndex int
	if err := row.Scan(&dayNumber, &orderIndex); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM itinerary_items WHERE id=$1`, itemID); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `
		UPDATE itinerary_items SET order_index = order_index - 1
		WHERE itinerary_id=$1 AND day_number=$2 AND order_index > $3
	`, itineraryID, dayNumber, orderIndex)
	if err != nil {
		return err
	}

	if err := s.refreshDistance(ctx, itineraryID); err != nil {
		return err
	}
	s.publish(itineraryID, "item.removed", map[string]string{"id": itemID})
	return nil
}

// Reorder applies the target layout in one transaction. Any entry that
// does not match a stored item fails the whole batch.
func (s *Service) Reorder(ctx context.Context, itineraryID, userID string, entries []ReorderEntry) error {
	if _, err := s.owned(ctx, itineraryID, userID); err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrBadReorder
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, entry := range entries {
		tag, err := tx.Exec(ctx, `
			UPDATE itinerary_items SET day_number=$3, order_index=$4
			WHERE id=$1 AND itinerary_id=$2
		`, entry.ID, itineraryID, entry.DayNumber, entry.OrderIndex)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != 1 {
			return ErrBadReorder
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE itineraries SET updated_at=now() WHERE id=$1`, itineraryID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publish(itineraryID, "items.reordered", entries)
	return nil
}

// Alternatives lists up to ten swap candidates for one item's location,
// all in the same city, best-rated first. An unrecognized type falls
// back to same-category.
func (s *Service) Alternatives(ctx context.Context, itineraryID, itemID, viewerID, altType string) ([]Alternative, error) {
	it, err := s.header(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	if !canView(it, viewerID) {
		return nil, ErrForbidden
	}

	row := s.db.QueryRow(ctx, `
		SELECT l.id, l.city, l.category, l.price_level, l.latitude, l.longitude
		FROM itinerary_items i
		JOIN locations l ON l.id = i.location_id
		WHERE i.id=$1 AND i.itinerary_id=$2
	`, itemID, itineraryID)
	var locID, city, category string
	var priceLevel int
	var lat, lng float64
	if err := row.Scan(&locID, &city, &category, &priceLevel, &lat, &lng); err != nil {
		return nil, err
	}

	const altColumns = `id, name, category, city, latitude, longitude, image_url,
		price_level, rating, avg_duration_mins`

	var rows pgx.Rows
	switch altType {
	case "price":
		rows, err = s.db.Query(ctx, `
			SELECT `+altColumns+` FROM locations
			WHERE city=$1 AND id<>$2 AND price_level=$3
			ORDER BY rating DESC LIMIT 10
		`, city, locID, priceLevel)
	case "area":
		rows, err = s.db.Query(ctx, `
			SELECT `+altColumns+` FROM locations
			WHERE city=$1 AND id<>$2
			  AND latitude BETWEEN $3 AND $4 AND longitude BETWEEN $5 AND $6
			ORDER BY rating DESC LIMIT 10
		`, city, locID, lat-areaDelta, lat+areaDelta, lng-areaDelta, lng+areaDelta)
	case "rating":
		rows, err = s.db.Query(ctx, `
			SELECT `+altColumns+` FROM locations
			WHERE city=$1 AND id<>$2
			ORDER BY rating DESC LIMIT 10
		`, city, locID)
	default:
		rows, err = s.db.Query(ctx, `
			SELECT `+altColumns+` FROM locations
			WHERE city=$1 AND id<>$2 AND category=$3
			ORDER BY rating DESC LIMIT 10
		`, city, locID, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alternatives := []Alternative{}
	for rows.Next() {
		var alt Alternative
		if err := rows.Scan(&alt.ID, &alt.Name, &alt.Category, &alt.City, &alt.Latitude,
			&alt.Longitude, &alt.ImageURL, &alt.PriceLevel, &alt.Rating, &alt.AvgDurationMins); err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}
	return alternatives, nil
}

// Schedule derives each day's clock times from the stored sequence.
func (s *Service) Schedule(ctx context.Context, id, viewerID string) ([]planner.DaySchedule, error) {
	it, err := s.Get(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	days := map[int]*planner.DayPlan{}
	order := []int{}
	for _, item := range it.Items {
		day, ok := days[item.DayNumber]
		if !ok {
			day = &planner.DayPlan{DayNumber: item.DayNumber, StartTime: defaultDayStart}
			days[item.DayNumber] = day
			order = append(order, item.DayNumber)
		}
		if len(day.Items) == 0 {
			if mins, ok := parseClock(item.StartTime); ok {
				day.StartTime = mins
			}
		}

		duration := item.AvgDurationMins
		if start, ok := parseClock(item.StartTime); ok {
			if end, ok := parseClock(item.EndTime); ok && end > start {
				duration = end - start
			}
		}

		day.Items = append(day.Items, planner.Activity{
			ID:           item.ID,
			LocationID:   item.LocationID,
			Name:         item.LocationName,
			Category:     item.LocationCategory,
			OrderIndex:   item.OrderIndex,
			DurationMins: duration,
			TransitMins:  item.TransportDuration,
			Cost:         item.TransportCost,
			Rating:       item.Rating,
		})
	}

	schedules := make([]planner.DaySchedule, 0, len(order))
	for _, dayNumber := range order {
		schedules = append(schedules, planner.Schedule(*days[dayNumber]))
	}
	return schedules, nil
}

const itineraryColumns = `id, COALESCE(user_id, ''), title, description, city, duration_days,
	start_date, cover_image, is_template, is_public, generated_by, estimated_budget,
	total_distance, created_at, updated_at`

func (s *Service) header(ctx context.Context, id string) (Itinerary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+itineraryColumns+`
		FROM itineraries WHERE id=$1
	`, id)
	return scanItinerary(row)
}

func (s *Service) owned(ctx context.Context, id, userID string) (Itinerary, error) {
	it, err := s.header(ctx, id)
	if err != nil {
		return Itinerary{}, err
	}
	if it.UserID != userID {
		return Itinerary{}, ErrForbidden
	}
	return it, nil
}

func (s *Service) items(ctx context.Context, itineraryID string) ([]Item, error) {
	rows, err := s.db.Query(ctx, `
		SELECT i.id, i.itinerary_id, i.location_id, i.day_number, i.order_index,
		       i.start_time, i.end_time, i.notes, i.transport_mode,
		       i.transport_duration, i.transport_cost,
		       l.name, l.category, l.latitude, l.longitude, l.rating, l.avg_duration_mins
		FROM itinerary_items i
		JOIN locations l ON l.id = i.location_id
		WHERE i.itinerary_id = $1
		ORDER BY i.day_number ASC, i.order_index ASC
	`, itineraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.ItineraryID, &item.LocationID, &item.DayNumber,
			&item.OrderIndex, &item.StartTime, &item.EndTime, &item.Notes, &item.TransportMode,
			&item.TransportDuration, &item.TransportCost, &item.LocationName,
			&item.LocationCategory, &item.Latitude, &item.Longitude, &item.Rating,
			&item.AvgDurationMins); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) insertItem(ctx context.Context, item Item) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO itinerary_items (id, itinerary_id, location_id, day_number, order_index,
			start_time, end_time, notes, transport_mode, transport_duration, transport_cost)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, item.ID, item.ItineraryID, item.LocationID, item.DayNumber, item.OrderIndex,
		item.StartTime, item.EndTime, item.Notes, item.TransportMode,
		item.TransportDuration, item.TransportCost)
	return err
}

// refreshDistance recomputes the itinerary's total haversine distance
// from its current item sequence and bumps updated_at.
func (s *Service) refreshDistance(ctx context.Context, itineraryID string) error {
	items, err := s.items(ctx, itineraryID)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		UPDATE itineraries SET total_distance=$2, updated_at=now() WHERE id=$1
	`, itineraryID, totalDistance(items))
	return err
}

func (s *Service) publish(itineraryID, eventType string, payload any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish("itinerary:"+itineraryID, map[string]any{
		"type": eventType,
		"data": payload,
	})
}

func canView(it Itinerary, viewerID string) bool {
	if it.IsPublic || it.IsTemplate {
		return true
	}
	return viewerID != "" && it.UserID == viewerID
}

func totalDistance(items []Item) float64 {
	var km float64
	for i := 1; i < len(items); i++ {
		if items[i].DayNumber != items[i-1].DayNumber {
			continue
		}
		km += geo.HaversineKm(items[i-1].Latitude, items[i-1].Longitude,
			items[i].Latitude, items[i].Longitude)
	}
	return km
}

// parseClock reads "HH:MM" into minutes from midnight.
func parseClock(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, false
	}
	return hours*60 + mins, true
}

type scannable interface {
	Scan(dest ...any) error
}

func scanItinerary(row scannable) (Itinerary, error) {
	var it Itinerary
	err := row.Scan(&it.ID, &it.UserID, &it.Title, &it.Description, &it.City,
		&it.DurationDays, &it.StartDate, &it.CoverImage, &it.IsTemplate, &it.IsPublic,
		&it.GeneratedBy, &it.EstimatedBudget, &it.TotalDistance, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return Itinerary{}, err
	}
	return it, nil
}
