package template

// Template is a curated itinerary with targeting metadata used by the
// preference matcher. Read-only at request time; seeded out of band.
type Template struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Tagline         string         `json:"tagline"`
	CoverImage      string         `json:"cover_image"`
	City            string         `json:"city"`
	DurationDays    int            `json:"duration_days"`
	TargetPersonas  []string       `json:"target_personas"`
	TargetVibes     []string       `json:"target_vibes"`
	TargetBudget    string         `json:"target_budget"`
	TargetInterests []string       `json:"target_interests"`
	Highlights      []string       `json:"highlights"`
	Badges          []string       `json:"badges"`
	ItineraryID     string         `json:"itinerary_id"`
	DisplayOrder    int            `json:"display_order"`
	Items           []TemplateItem `json:"items"`
}

// TemplateItem is one activity of the template's day-by-day sequence,
// denormalized with enough of its location to render a preview.
type TemplateItem struct {
	ID               string  `json:"id"`
	DayNumber        int     `json:"day_number"`
	OrderIndex       int     `json:"order_index"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	TransportMode    string  `json:"transport_mode"`
	LocationID       string  `json:"location_id"`
	LocationName     string  `json:"location_name"`
	LocationCategory string  `json:"location_category"`
	LocationRating   float64 `json:"location_rating"`
	AvgDurationMins  int     `json:"avg_duration_mins"`
}

// Query is the transient preference input, one per request.
type Query struct {
	City         string
	Personas     []string
	Vibes        []string
	Budget       string
	Interests    []string
	DurationDays int
}

// Scored wraps a template with its computed match for one query.
type Scored struct {
	Template
	MatchScore      int      `json:"match_score"`
	MatchedCriteria []string `json:"matched_criteria"`
}
