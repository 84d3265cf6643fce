package demo

import (
	"context"
	"time"

	"github.com/suka712/anvago-travel-planning/internal/db"
	"github.com/suka712/anvago-travel-planning/internal/stream"
)

// State is the singleton demo configuration. All clients share one row.
type State struct {
	IsActive     bool      `json:"is_active"`
	Speed        int       `json:"speed"`
	MockLocation bool      `json:"mock_location"`
	MockWeather  bool      `json:"mock_weather"`
	MockAI       bool      `json:"mock_ai"`
	MockBookings bool      `json:"mock_bookings"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Patch struct {
	IsActive     *bool `json:"is_active"`
	Speed        *int  `json:"speed"`
	MockLocation *bool `json:"mock_location"`
	MockWeather  *bool `json:"mock_weather"`
	MockAI       *bool `json:"mock_ai"`
	MockBookings *bool `json:"mock_bookings"`
}

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) Get(ctx context.Context) (State, error) {
	row := s.db.QueryRow(ctx, `
		SELECT is_active, speed, mock_location, mock_weather, mock_ai, mock_bookings, updated_at
		FROM demo_state WHERE id='singleton'
	`)
	var state State
	err := row.Scan(&state.IsActive, &state.Speed, &state.MockLocation, &state.MockWeather,
		&state.MockAI, &state.MockBookings, &state.UpdatedAt)
	return state, err
}

// Apply merges the patch into the singleton row and announces the new
// state on the demo topic.
func (s *Service) Apply(ctx context.Context, patch Patch) (State, error) {
	state, err := s.Get(ctx)
	if err != nil {
		return State{}, err
	}

	if patch.IsActive != nil {
		state.IsActive = *patch.IsActive
	}
	if patch.Speed != nil && *patch.Speed > 0 {
		state.Speed = *patch.Speed
	}
	if patch.MockLocation != nil {
		state.MockLocation = *patch.MockLocation
	}
	if patch.MockWeather != nil {
		state.MockWeather = *patch.MockWeather
	}
	if patch.MockAI != nil {
		state.MockAI = *patch.MockAI
	}
	if patch.MockBookings != nil {
		state.MockBookings = *patch.MockBookings
	}

	row := s.db.QueryRow(ctx, `
		UPDATE demo_state
		SET is_active=$1, speed=$2, mock_location=$3, mock_weather=$4,
		    mock_ai=$5, mock_bookings=$6, updated_at=now()
		WHERE id='singleton'
		RETURNING updated_at
	`, state.IsActive, state.Speed, state.MockLocation, state.MockWeather,
		state.MockAI, state.MockBookings)
	if err := row.Scan(&state.UpdatedAt); err != nil {
		return State{}, err
	}

	if s.hub != nil {
		s.hub.Publish("demo", map[string]any{"type": "demo.updated", "data": state})
	}
	return state, nil
}
