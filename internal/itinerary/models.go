package itinerary

import "time"

type Itinerary struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	City            string     `json:"city"`
	DurationDays    int        `json:"duration_days"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	CoverImage      string     `json:"cover_image"`
	IsTemplate      bool       `json:"is_template"`
	IsPublic        bool       `json:"is_public"`
	GeneratedBy     string     `json:"generated_by"`
	EstimatedBudget float64    `json:"estimated_budget"`
	TotalDistance   float64    `json:"total_distance"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Items           []Item     `json:"items,omitempty"`
}

// Item is one scheduled activity, denormalized with enough of its
// location to render and to derive distances and clock times.
type Item struct {
	ID                string  `json:"id"`
	ItineraryID       string  `json:"itinerary_id"`
	LocationID        string  `json:"location_id"`
	DayNumber         int     `json:"day_number"`
	OrderIndex        int     `json:"order_index"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	Notes             string  `json:"notes"`
	TransportMode     string  `json:"transport_mode"`
	TransportDuration int     `json:"transport_duration"`
	TransportCost     float64 `json:"transport_cost"`

	LocationName     string  `json:"location_name"`
	LocationCategory string  `json:"location_category"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Rating           float64 `json:"rating"`
	AvgDurationMins  int     `json:"avg_duration_mins"`
}

// ReorderEntry assigns one item its new position. A reorder request
// carries the complete target layout for the items it names.
type ReorderEntry struct {
	ID         string `json:"id"`
	DayNumber  int    `json:"day_number"`
	OrderIndex int    `json:"order_index"`
}

// Alternative is a swap candidate for an itinerary item's location.
type Alternative struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	City            string  `json:"city"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	ImageURL        string  `json:"image_url"`
	PriceLevel      int     `json:"price_level"`
	Rating          float64 `json:"rating"`
	AvgDurationMins int     `json:"avg_duration_mins"`
}
