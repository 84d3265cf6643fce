package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

var locationCols = []string{
	"id", "name", "name_local", "description", "description_short", "city", "category",
	"latitude", "longitude", "address", "tags", "image_url", "price_level", "rating",
	"review_count", "avg_duration_mins", "opening_hours", "is_popular", "is_hidden_gem",
	"is_verified", "created_at",
}

func beachRow() []any {
	return []any{
		"loc-1", "My Khe Beach", "Bai bien My Khe", "long desc", "short desc", "Danang", "beach",
		16.0544, 108.2478, "Son Tra District", []string{"beach", "sunrise"}, "https://img", 1, 4.7,
		3456, 120, []byte(`{"saturday":{"open":"06:00","close":"18:00"}}`), true, false,
		true, time.Now(),
	}
}

func TestSearchByCity(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, name_local, description, description_short`).
		WithArgs("Danang", "beach", "").
		WillReturnRows(pgxmock.NewRows(locationCols).AddRow(beachRow()...))

	svc := NewService(mock)
	locations, err := svc.Search(context.Background(), SearchParams{City: "Danang", Category: "beach"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(locations) != 1 || locations[0].Name != "My Khe Beach" {
		t.Fatalf("unexpected results: %v", locations)
	}
	if locations[0].OpeningHours["saturday"].Open != "06:00" {
		t.Fatalf("opening hours not decoded")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, name_local`).
		WithArgs("Danang", "", "").
		WillReturnError(errLocation)

	svc := NewService(mock)
	if _, err := svc.Search(context.Background(), SearchParams{City: "Danang"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPopular(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM locations\s+WHERE city = \$1 AND is_popular`).
		WithArgs("Danang").
		WillReturnRows(pgxmock.NewRows(locationCols).AddRow(beachRow()...))

	svc := NewService(mock)
	locations, err := svc.Popular(context.Background(), "Danang")
	if err != nil || len(locations) != 1 {
		t.Fatalf("popular: %v", err)
	}
	if !locations[0].IsPopular {
		t.Fatalf("expected popular flag")
	}
}

func TestGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM locations WHERE id`).
		WithArgs("missing").
		WillReturnError(errLocation)

	svc := NewService(mock)
	if _, err := svc.Get(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory("beach") || !ValidCategory("wellness") {
		t.Fatalf("expected known categories valid")
	}
	if ValidCategory("volcano") {
		t.Fatalf("expected unknown category invalid")
	}
}

var errLocation = errors.New("location query error")
