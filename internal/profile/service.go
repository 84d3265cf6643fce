package profile

import (
	"context"
	"errors"

	"github.com/suka712/anvago-travel-planning/internal/db"

	"github.com/jackc/pgx/v5"
)

var ErrTooManyPersonas = errors.New("at most 3 personas allowed")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// GetPreferences returns the user's stored preferences, or empty
// defaults for a user who never finished onboarding.
func (s *Service) GetPreferences(ctx context.Context, userID string) (Preferences, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, personas, vibes, interests, budget_level, mobility_level,
		       group_size, updated_at
		FROM user_preferences WHERE user_id=$1
	`, userID)

	var prefs Preferences
	err := row.Scan(&prefs.UserID, &prefs.Personas, &prefs.Vibes, &prefs.Interests,
		&prefs.BudgetLevel, &prefs.MobilityLevel, &prefs.GroupSize, &prefs.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Preferences{
			UserID:    userID,
			Personas:  []string{},
			Vibes:     []string{},
			Interests: []string{},
			GroupSize: 1,
		}, nil
	}
	if err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// SavePreferences upserts the full preference set. The persona cap is
// enforced here, at the collection step.
func (s *Service) SavePreferences(ctx context.Context, userID string, prefs Preferences) (Preferences, error) {
	if len(prefs.Personas) > MaxPersonas {
		return Preferences{}, ErrTooManyPersonas
	}
	if prefs.Personas == nil {
		prefs.Personas = []string{}
	}
	if prefs.Vibes == nil {
		prefs.Vibes = []string{}
	}
	if prefs.Interests == nil {
		prefs.Interests = []string{}
	}
	if prefs.GroupSize < 1 {
		prefs.GroupSize = 1
	}
	prefs.UserID = userID

	row := s.db.QueryRow(ctx, `
		INSERT INTO user_preferences (user_id, personas, vibes, interests, budget_level,
			mobility_level, group_size, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now())
		ON CONFLICT (user_id) DO UPDATE SET
			personas=EXCLUDED.personas, vibes=EXCLUDED.vibes, interests=EXCLUDED.interests,
			budget_level=EXCLUDED.budget_level, mobility_level=EXCLUDED.mobility_level,
			group_size=EXCLUDED.group_size, updated_at=now()
		RETURNING updated_at
	`, prefs.UserID, prefs.Personas, prefs.Vibes, prefs.Interests, prefs.BudgetLevel,
		prefs.MobilityLevel, prefs.GroupSize)
	if err := row.Scan(&prefs.UpdatedAt); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}
