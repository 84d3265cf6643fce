package rewards

import (
	"context"
	"errors"
	"time"

	"github.com/suka712/anvago-travel-planning/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUnknownContribution = errors.New("unknown contribution type")
	ErrUnknownGift         = errors.New("unknown gift")
	ErrInsufficientPoints  = errors.New("not enough points")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Me(ctx context.Context, userID string) (Balance, error) {
	balance, err := s.loadBalance(ctx, userID)
	if err != nil {
		return Balance{}, err
	}
	balance.Tier = CurrentTier(balance.TotalEarnedPoints)
	balance.NextTier = NextTier(balance.TotalEarnedPoints)
	balance.TierProgress = TierProgress(balance.TotalEarnedPoints)
	return balance, nil
}

// Contributions returns the user's latest contributions, capped at the
// last hundred.
func (s *Service) Contributions(ctx context.Context, userID string) ([]Contribution, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, type, location_id, location_name, points, created_at
		FROM reward_contributions WHERE user_id=$1
		ORDER BY created_at DESC LIMIT 100
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contributions := []Contribution{}
	for rows.Next() {
		var c Contribution
		if err := rows.Scan(&c.ID, &c.UserID, &c.Type, &c.LocationID, &c.LocationName,
			&c.Points, &c.CreatedAt); err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}

// AddContribution records one contribution, credits its points and
// advances or resets the daily streak.
func (s *Service) AddContribution(ctx context.Context, userID, typ, locationID, locationName string) (Contribution, error) {
	points, ok := ContributionPoints[typ]
	if !ok {
		return Contribution{}, ErrUnknownContribution
	}

	balance, err := s.loadBalance(ctx, userID)
	if err != nil {
		return Contribution{}, err
	}

	now := nowFn()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	switch balance.LastContributionDate {
	case yesterday:
		balance.StreakDays++
	case today:
		// second contribution today, streak unchanged
	default:
		balance.StreakDays = 1
	}

	contribution := Contribution{
		ID:           uuid.NewString(),
		UserID:       userID,
		Type:         typ,
		LocationID:   locationID,
		LocationName: locationName,
		Points:       points,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO reward_contributions (id, user_id, type, location_id, location_name, points)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, contribution.ID, userID, typ, locationID, locationName, points)
	if err := row.Scan(&contribution.CreatedAt); err != nil {
		return Contribution{}, err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO user_rewards (user_id, points, total_earned_points, streak_days, last_contribution_date)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE SET
			points=EXCLUDED.points, total_earned_points=EXCLUDED.total_earned_points,
			streak_days=EXCLUDED.streak_days, last_contribution_date=EXCLUDED.last_contribution_date
	`, userID, balance.Points+points, balance.TotalEarnedPoints+points, balance.StreakDays, today)
	if err != nil {
		return Contribution{}, err
	}
	return contribution, nil
}

// Redeem exchanges spendable points for a catalog gift. Premium gifts
// also extend the user's premium window.
func (s *Service) Redeem(ctx context.Context, userID, giftID string) (Redemption, error) {
	gift, ok := GiftByID(giftID)
	if !ok {
		return Redemption{}, ErrUnknownGift
	}

	balance, err := s.loadBalance(ctx, userID)
	if err != nil {
		return Redemption{}, err
	}
	if balance.Points < gift.Points {
		return Redemption{}, ErrInsufficientPoints
	}

	redemption := Redemption{
		ID:     uuid.NewString(),
		UserID: userID,
		GiftID: gift.ID,
		Points: gift.Points,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO reward_redemptions (id, user_id, gift_id, points)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, redemption.ID, userID, gift.ID, gift.Points)
	if err := row.Scan(&redemption.CreatedAt); err != nil {
		return Redemption{}, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE user_rewards SET points = points - $2 WHERE user_id=$1
	`, userID, gift.Points)
	if err != nil {
		return Redemption{}, err
	}

	if gift.Type == "premium" {
		premiumUntil := nowFn().AddDate(0, 0, gift.PremiumDays)
		_, err = s.db.Exec(ctx, `
			UPDATE users
			SET is_premium=TRUE,
			    premium_until=GREATEST(COALESCE(premium_until, to_timestamp(0)), $2::timestamptz),
			    updated_at=now()
			WHERE id=$1
		`, userID, premiumUntil)
		if err != nil {
			return Redemption{}, err
		}
	}
	return redemption, nil
}

func (s *Service) loadBalance(ctx context.Context, userID string) (Balance, error) {
	row := s.db.QueryRow(ctx, `
		SELECT points, total_earned_points, streak_days, last_contribution_date
		FROM user_rewards WHERE user_id=$1
	`, userID)

	balance := Balance{UserID: userID}
	err := row.Scan(&balance.Points, &balance.TotalEarnedPoints, &balance.StreakDays,
		&balance.LastContributionDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return balance, nil
	}
	if err != nil {
		return Balance{}, err
	}
	return balance, nil
}

var nowFn = time.Now
