package profile

import "time"

// MaxPersonas caps how many traveler personas one user may select
// during onboarding.
const MaxPersonas = 3

// Preferences is the onboarding output driving template suggestions.
type Preferences struct {
	UserID        string    `json:"user_id"`
	Personas      []string  `json:"personas"`
	Vibes         []string  `json:"vibes"`
	Interests     []string  `json:"interests"`
	BudgetLevel   string    `json:"budget_level"`
	MobilityLevel string    `json:"mobility_level"`
	GroupSize     int       `json:"group_size"`
	UpdatedAt     time.Time `json:"updated_at"`
}
