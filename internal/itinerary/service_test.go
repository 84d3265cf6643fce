package itinerary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

var itineraryCols = []string{
	"id", "user_id", "title", "description", "city", "duration_days", "start_date",
	"cover_image", "is_template", "is_public", "generated_by", "estimated_budget",
	"total_distance", "created_at", "updated_at",
}

var joinedItemCols = []string{
	"id", "itinerary_id", "location_id", "day_number", "order_index", "start_time",
	"end_time", "notes", "transport_mode", "transport_duration", "transport_cost",
	"name", "category", "latitude", "longitude", "rating", "avg_duration_mins",
}

func headerRow(id, userID string, isPublic bool) []any {
	now := time.Now()
	return []any{
		id, userID, "Danang Weekend", "", "Danang", 2, nil,
		"", false, isPublic, "user", 0.0, 0.0, now, now,
	}
}

func newServiceMock(t *testing.T) (pgxmock.PgxPoolIface, *Service) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, NewService(mock, nil)
}

func TestCreateItineraryDefaults(t *testing.T) {
	mock, svc := newServiceMock(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO itineraries`).
		WithArgs(pgxmock.AnyArg(), "user-1", "My Trip", "", "Danang", 1,
			pgxmock.AnyArg(), "", false, false, "user", 0.0).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	it, err := svc.Create(context.Background(), "user-1", Itinerary{Title: "My Trip"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if it.City != "Danang" || it.DurationDays != 1 || it.GeneratedBy != "user" {
		t.Fatalf("defaults not applied: %+v", it)
	}
	if it.ID == "" || it.UserID != "user-1" {
		t.Fatalf("identity not assigned: %+v", it)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPrivateItineraryOwnerOnly(t *testing.T) {
	mock, svc := newServiceMock(t)

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", false)...))

	_, err := svc.Get(context.Background(), "it-1", "someone-else")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", false)...))

	_, err = svc.Get(context.Background(), "it-1", "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for anonymous, got %v", err)
	}
}

func TestGetPublicItineraryVisibleToAnyone(t *testing.T) {
	mock, svc := newServiceMock(t)

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", true)...))
	mock.ExpectQuery(`JOIN locations l ON`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(joinedItemCols).
			AddRow("item-1", "it-1", "loc-1", 1, 0, "09:00", "10:00", "", "walk", 10, 0.0,
				"Han Market", "market", 16.068, 108.223, 4.5, 90))

	it, err := svc.Get(context.Background(), "it-1", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(it.Items) != 1 || it.Items[0].LocationName != "Han Market" {
		t.Fatalf("items not loaded: %+v", it.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDuplicateCopiesItemsWithCopySuffix(t *testing.T) {
	mock, svc := newServiceMock(t)

	now := time.Now()
	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", true)...))
	mock.ExpectQuery(`JOIN locations l ON`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(joinedItemCols).
			AddRow("item-1", "it-1", "loc-1", 1, 0, "09:00", "10:00", "", "walk", 10, 0.0,
				"Han Market", "market", 16.068, 108.223, 4.5, 90).
			AddRow("item-2", "it-1", "loc-2", 1, 1, "10:30", "12:00", "", "grab", 15, 2.5,
				"My Khe Beach", "beach", 16.054, 108.247, 4.7, 120))
	mock.ExpectQuery(`INSERT INTO itineraries`).
		WithArgs(pgxmock.AnyArg(), "copier", "Danang Weekend (Copy)", "", "Danang", 2,
			pgxmock.AnyArg(), "", false, false, "duplicate", 0.0, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO itinerary_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "loc-1", 1, 0,
			"09:00", "10:00", "", "walk", 10, 0.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO itinerary_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "loc-2", 1, 1,
			"10:30", "12:00", "", "grab", 15, 2.5).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dup, err := svc.Duplicate(context.Background(), "it-1", "copier")
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.Title != "Danang Weekend (Copy)" {
		t.Fatalf("unexpected title %q", dup.Title)
	}
	if dup.UserID != "copier" || dup.IsPublic || dup.IsTemplate {
		t.Fatalf("copy not privatized: %+v", dup)
	}
	if dup.ID == "it-1" || dup.Items[0].ID == "item-1" {
		t.Fatalf("identities not refreshed")
	}
	if dup.TotalDistance <= 0 {
		t.Fatalf("expected derived distance, got %f", dup.TotalDistance)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddItemAppendsToDay(t *testing.T) {
	mock, svc := newServiceMock(t)

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", false)...))
	mock.ExpectQuery(`COALESCE\(MAX\(order_index\)`).
		WithArgs("it-1", 2).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO itinerary_items`).
		WithArgs(pgxmock.AnyArg(), "it-1", "loc-9", 2, 3, "", "", "", "", 0, 0.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`JOIN locations l ON`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(joinedItemCols))
	mock.ExpectExec(`SET total_distance`).
		WithArgs("it-1", 0.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	item, err := svc.AddItem(context.Background(), "it-1", "owner", Item{LocationID: "loc-9", DayNumber: 2})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.OrderIndex != 3 {
		t.Fatalf("expected append at index 3, got %d", item.OrderIndex)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteItemRenumbersDay(t *testing.T) {
	mock, svc := newServiceMock(t)

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", false)...))
	mock.ExpectQuery(`SELECT day_number, order_index`).
		WithArgs("item-2", "it-1").
		WillReturnRows(pgxmock.NewRows([]string{"day_number", "order_index"}).AddRow(1, 1))
	mock.ExpectExec(`DELETE FROM itinerary_items`).
		WithArgs("item-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`order_index = order_index - 1`).
		WithArgs("it-1", 1, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectQuery(`JOIN locations l ON`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(joinedItemCols))
	mock.ExpectExec(`SET total_distance`).
		WithArgs("it-1", 0.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := svc.DeleteItem(context.Background(), "it-1", "item-2", "owner"); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReorderCommitsWholeLayout(t *testing.T) {
	mock, svc := newServiceMock(t)

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", false)...))
	mock.ExpectBegin()
	mock.ExpectExec(`SET day_number`).
		WithArgs("item-1", "it-1", 1, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET day_number`).
		WithArgs("item-2", "it-1", 1, 0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET updated_at=now\(\)`).
		WithArgs("it-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := svc.Reorder(context.Background(), "it-1", "owner", []ReorderEntry{
		{ID: "item-1", DayNumber: 1, OrderIndex: 1},
		{ID: "item-2", DayNumber: 1, OrderIndex: 0},
	})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReorderUnknownItemRollsBack(t *testing.T) {
	mock, svc := newServiceMock(t)

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", false)...))
	mock.ExpectBegin()
	mock.ExpectExec(`SET day_number`).
		WithArgs("item-1", "it-1", 1, 0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET day_number`).
		WithArgs("ghost", "it-1", 1, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := svc.Reorder(context.Background(), "it-1", "owner", []ReorderEntry{
		{ID: "item-1", DayNumber: 1, OrderIndex: 0},
		{ID: "ghost", DayNumber: 1, OrderIndex: 1},
	})
	if !errors.Is(err, ErrBadReorder) {
		t.Fatalf("expected bad reorder, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlternativesNearby(t *testing.T) {
	mock, svc := newServiceMock(t)

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", true)...))
	mock.ExpectQuery(`JOIN locations l ON`).
		WithArgs("item-1", "it-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "city", "category", "price_level", "latitude", "longitude"}).
			AddRow("loc-1", "Danang", "market", 2, 16.0, 108.0))
	mock.ExpectQuery(`latitude BETWEEN`).
		WithArgs("Danang", "loc-1", 16.0-areaDelta, 16.0+areaDelta, 108.0-areaDelta, 108.0+areaDelta).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "city", "latitude",
			"longitude", "image_url", "price_level", "rating", "avg_duration_mins"}).
			AddRow("loc-2", "Con Market", "market", "Danang", 16.01, 108.01, "", 1, 4.2, 60))

	alternatives, err := svc.Alternatives(context.Background(), "it-1", "item-1", "", "area")
	if err != nil {
		t.Fatalf("alternatives: %v", err)
	}
	if len(alternatives) != 1 || alternatives[0].ID != "loc-2" {
		t.Fatalf("unexpected alternatives: %+v", alternatives)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScheduleDerivesClockTimes(t *testing.T) {
	mock, svc := newServiceMock(t)

	mock.ExpectQuery(`FROM itineraries WHERE id`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(itineraryCols).AddRow(headerRow("it-1", "owner", true)...))
	mock.ExpectQuery(`JOIN locations l ON`).
		WithArgs("it-1").
		WillReturnRows(pgxmock.NewRows(joinedItemCols).
			AddRow("item-1", "it-1", "loc-1", 1, 0, "09:00", "10:30", "", "walk", 15, 0.0,
				"Han Market", "market", 16.068, 108.223, 4.5, 90).
			AddRow("item-2", "it-1", "loc-2", 1, 1, "", "", "", "grab", 0, 0.0,
				"My Khe Beach", "beach", 16.054, 108.247, 4.7, 60))

	schedules, err := svc.Schedule(context.Background(), "it-1", "")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("expected one day, got %d", len(schedules))
	}

	day := schedules[0]
	if day.StartTime != 540 {
		t.Fatalf("expected day start from first item, got %d", day.StartTime)
	}
	// 09:00-10:30 stored window, then 15 transit, then the location's
	// 60-minute average visit.
	if day.Slots[0].StartClock != "09:00" || day.Slots[0].EndClock != "10:30" {
		t.Fatalf("unexpected first slot: %+v", day.Slots[0])
	}
	if day.Slots[1].StartClock != "10:45" || day.Slots[1].EndClock != "11:45" {
		t.Fatalf("unexpected second slot: %+v", day.Slots[1])
	}
	if day.EndClock != "11:45" {
		t.Fatalf("unexpected day end %s", day.EndClock)
	}
}
