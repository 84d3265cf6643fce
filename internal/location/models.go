package location

import "time"

// Categories enumerates every catalog category. Seeded locations only
// ever carry one of these.
var Categories = []string{
	"beach", "attraction", "temple", "market", "restaurant", "cafe",
	"nature", "nightlife", "museum", "wellness", "activity", "shopping",
}

func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// OpeningWindow is one weekday's open/close pair, "HH:MM" strings.
type OpeningWindow struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Location struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	NameLocal        string                   `json:"name_local"`
	Description      string                   `json:"description"`
	DescriptionShort string                   `json:"description_short"`
	City             string                   `json:"city"`
	Category         string                   `json:"category"`
	Latitude         float64                  `json:"latitude"`
	Longitude        float64                  `json:"longitude"`
	Address          string                   `json:"address"`
	Tags             []string                 `json:"tags"`
	ImageURL         string                   `json:"image_url"`
	PriceLevel       int                      `json:"price_level"`
	Rating           float64                  `json:"rating"`
	ReviewCount      int                      `json:"review_count"`
	AvgDurationMins  int                      `json:"avg_duration_mins"`
	OpeningHours     map[string]OpeningWindow `json:"opening_hours,omitempty"`
	IsPopular        bool                     `json:"is_popular"`
	IsHiddenGem      bool                     `json:"is_hidden_gem"`
	IsVerified       bool                     `json:"is_verified"`
	CreatedAt        time.Time                `json:"created_at"`
}
