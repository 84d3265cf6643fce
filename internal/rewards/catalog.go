package rewards

// ContributionPoints awards per contribution type. Fixed data shared
// with the client, not tunable at runtime.
var ContributionPoints = map[string]int{
	"complete_trip":        50,
	"rating":               10,
	"rate_trip":            25,
	"photo":                30,
	"first_photo_bonus":    20,
	"tip":                  25,
	"verify_hours":         15,
	"verify_price":         15,
	"report":               20,
	"detailed_review":      40,
	"helpful_review_bonus": 50,
	"daily_contribution":   10,
	"weekly_streak":        100,
}

type Tier struct {
	Points      int    `json:"points"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	PremiumDays int    `json:"premium_days"`
}

// Tiers in ascending point order; CurrentTier and NextTier rely on it.
var Tiers = []Tier{
	{Points: 0, Name: "Explorer", Icon: "🌱", PremiumDays: 0},
	{Points: 100, Name: "Traveler", Icon: "🎒", PremiumDays: 3},
	{Points: 300, Name: "Adventurer", Icon: "🧭", PremiumDays: 7},
	{Points: 600, Name: "Pathfinder", Icon: "🗺️", PremiumDays: 14},
	{Points: 1000, Name: "Local Expert", Icon: "⭐", PremiumDays: 30},
	{Points: 2000, Name: "Ambassador", Icon: "👑", PremiumDays: 60},
}

type Gift struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Type        string `json:"type"` // premium | discount | voucher | experience
	PremiumDays int    `json:"premium_days,omitempty"`
	Value       string `json:"value,omitempty"`
}

var Gifts = []Gift{
	{ID: "premium_week", Name: "1 Week Premium", Points: 200, Type: "premium", PremiumDays: 7},
	{ID: "premium_month", Name: "1 Month Premium", Points: 500, Type: "premium", PremiumDays: 30},
	{ID: "discount_10", Name: "10% Partner Discount", Points: 150, Type: "discount", Value: "10"},
	{ID: "discount_20", Name: "20% Partner Discount", Points: 300, Type: "discount", Value: "20"},
	{ID: "free_coffee", Name: "Free Coffee Voucher", Points: 100, Type: "voucher", Value: "coffee"},
	{ID: "local_tour", Name: "Local Guide Tour", Points: 800, Type: "experience", Value: "tour"},
}

// GiftByID returns the catalog gift, false for unknown ids.
func GiftByID(id string) (Gift, bool) {
	for _, gift := range Gifts {
		if gift.ID == id {
			return gift, true
		}
	}
	return Gift{}, false
}

// CurrentTier is the highest tier the user's lifetime earnings reach.
func CurrentTier(totalEarned int) Tier {
	current := Tiers[0]
	for _, tier := range Tiers {
		if totalEarned >= tier.Points {
			current = tier
		} else {
			break
		}
	}
	return current
}

// NextTier is the first tier above the user's lifetime earnings, nil at
// the top.
func NextTier(totalEarned int) *Tier {
	for i := range Tiers {
		if totalEarned < Tiers[i].Points {
			return &Tiers[i]
		}
	}
	return nil
}

// TierProgress is the percentage of the way from the current tier to
// the next, 100 at the top tier.
func TierProgress(totalEarned int) float64 {
	current := CurrentTier(totalEarned)
	next := NextTier(totalEarned)
	if next == nil {
		return 100
	}
	progress := float64(totalEarned-current.Points) / float64(next.Points-current.Points) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
