package rewards

import "time"

// Balance is the caller-facing rewards summary. Tier standing derives
// from lifetime earnings, never from the spendable balance.
type Balance struct {
	UserID               string  `json:"user_id"`
	Points               int     `json:"points"`
	TotalEarnedPoints    int     `json:"total_earned_points"`
	StreakDays           int     `json:"streak_days"`
	LastContributionDate string  `json:"last_contribution_date,omitempty"`
	Tier                 Tier    `json:"tier"`
	NextTier             *Tier   `json:"next_tier,omitempty"`
	TierProgress         float64 `json:"tier_progress"`
}

type Contribution struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Type         string    `json:"type"`
	LocationID   string    `json:"location_id,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
}

type Redemption struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GiftID    string    `json:"gift_id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}
