package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

var prefCols = []string{
	"user_id", "personas", "vibes", "interests", "budget_level",
	"mobility_level", "group_size", "updated_at",
}

func TestGetPreferences(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM user_preferences`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(prefCols).
			AddRow("user-1", []string{"foodie"}, []string{"local"}, []string{"street_food"},
				"budget", "walking", 2, time.Now()))

	svc := NewService(mock)
	prefs, err := svc.GetPreferences(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if len(prefs.Personas) != 1 || prefs.BudgetLevel != "budget" {
		t.Fatalf("unexpected preferences: %+v", prefs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPreferencesDefaultsWhenUnset(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM user_preferences`).
		WithArgs("new-user").
		WillReturnError(pgx.ErrNoRows)

	svc := NewService(mock)
	prefs, err := svc.GetPreferences(context.Background(), "new-user")
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if prefs.Personas == nil || len(prefs.Personas) != 0 || prefs.GroupSize != 1 {
		t.Fatalf("unexpected defaults: %+v", prefs)
	}
}

func TestSavePreferencesUpserts(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO user_preferences`).
		WithArgs("user-1", []string{"foodie", "adventurer"}, []string{}, []string{}, "moderate", "", 1).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	svc := NewService(mock)
	prefs, err := svc.SavePreferences(context.Background(), "user-1", Preferences{
		Personas:    []string{"foodie", "adventurer"},
		BudgetLevel: "moderate",
	})
	if err != nil {
		t.Fatalf("save preferences: %v", err)
	}
	if prefs.UserID != "user-1" || prefs.GroupSize != 1 {
		t.Fatalf("unexpected preferences: %+v", prefs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSavePreferencesPersonaCap(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.SavePreferences(context.Background(), "user-1", Preferences{
		Personas: []string{"a", "b", "c", "d"},
	})
	if !errors.Is(err, ErrTooManyPersonas) {
		t.Fatalf("expected persona cap error, got %v", err)
	}
}
