package planner

import (
	"errors"

	"github.com/google/uuid"
)

const (
	// MinActivityMins is the floor for any activity duration.
	MinActivityMins = 15
	// MaxStartTime is 23:00 in minutes from midnight.
	MaxStartTime = 1380
	// DefaultTransitMins applies between activities with no explicit transit.
	DefaultTransitMins = 15
)

var (
	ErrDayNotFound  = errors.New("day not found")
	ErrItemNotFound = errors.New("item not found in day")
	ErrBadPosition  = errors.New("position out of range")
	ErrBadOrder     = errors.New("order is not a permutation of the day's items")
)

type Activity struct {
	ID           string  `json:"id"`
	LocationID   string  `json:"location_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	OrderIndex   int     `json:"order_index"`
	DurationMins int     `json:"duration_mins"`
	TransitMins  int     `json:"transit_mins"` // to the next activity; 0 means unset
	Cost         float64 `json:"cost"`
	Rating       float64 `json:"rating"`
}

type DayPlan struct {
	DayNumber int        `json:"day_number"`
	StartTime int        `json:"start_time"` // minutes from midnight
	Items     []Activity `json:"items"`
}

// Editor holds the in-memory state of one itinerary being edited and
// applies the edit commands to it. It is not safe for concurrent use;
// editing is single-writer.
type Editor struct {
	Days []DayPlan
}

func NewEditor(days []DayPlan) *Editor {
	e := &Editor{Days: days}
	for i := range e.Days {
		renumber(&e.Days[i])
	}
	return e
}

// Reorder replaces a day's sequence wholesale. order must contain each
// of the day's current item ids exactly once.
func (e *Editor) Reorder(dayNumber int, order []string) error {
	day, err := e.day(dayNumber)
	if err != nil {
		return err
	}
	if len(order) != len(day.Items) {
		return ErrBadOrder
	}

	byID := make(map[string]Activity, len(day.Items))
	for _, item := range day.Items {
		byID[item.ID] = item
	}

	items := make([]Activity, 0, len(order))
	for _, id := range order {
		item, ok := byID[id]
		if !ok {
			return ErrBadOrder
		}
		delete(byID, id)
		items = append(items, item)
	}
	day.Items = items
	renumber(day)
	return nil
}

// Insert splices an activity in at position, assigning it a fresh identity.
func (e *Editor) Insert(dayNumber, position int, item Activity) error {
	day, err := e.day(dayNumber)
	if err != nil {
		return err
	}
	if position < 0 || position > len(day.Items) {
		return ErrBadPosition
	}

	item.ID = uuid.NewString()
	if item.DurationMins < MinActivityMins {
		item.DurationMins = MinActivityMins
	}
	if item.TransitMins == 0 {
		item.TransitMins = DefaultTransitMins
	}

	day.Items = append(day.Items, Activity{})
	copy(day.Items[position+1:], day.Items[position:])
	day.Items[position] = item
	renumber(day)
	return nil
}

func (e *Editor) Remove(dayNumber int, itemID string) error {
	day, err := e.day(dayNumber)
	if err != nil {
		return err
	}
	idx := indexOf(day, itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	day.Items = append(day.Items[:idx], day.Items[idx+1:]...)
	renumber(day)
	return nil
}

// Replace substitutes an activity in place; the replacement gets a
// fresh identity.
func (e *Editor) Replace(dayNumber int, itemID string, item Activity) error {
	day, err := e.day(dayNumber)
	if err != nil {
		return err
	}
	idx := indexOf(day, itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	item.ID = uuid.NewString()
	if item.DurationMins < MinActivityMins {
		item.DurationMins = MinActivityMins
	}
	if item.TransitMins == 0 {
		item.TransitMins = DefaultTransitMins
	}
	day.Items[idx] = item
	renumber(day)
	return nil
}

// AdjustDuration shifts an activity's duration by deltaMins, never
// below the 15-minute floor.
func (e *Editor) AdjustDuration(dayNumber int, itemID string, deltaMins int) error {
	day, err := e.day(dayNumber)
	if err != nil {
		return err
	}
	idx := indexOf(day, itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	next := day.Items[idx].DurationMins + deltaMins
	if next < MinActivityMins {
		next = MinActivityMins
	}
	day.Items[idx].DurationMins = next
	return nil
}

// AdjustStartTime shifts the day's start, clamped to 0:00-23:00.
func (e *Editor) AdjustStartTime(dayNumber, deltaMins int) error {
	day, err := e.day(dayNumber)
	if err != nil {
		return err
	}

	next := day.StartTime + deltaMins
	if next < 0 {
		next = 0
	}
	if next > MaxStartTime {
		next = MaxStartTime
	}
	day.StartTime = next
	return nil
}

func (e *Editor) day(dayNumber int) (*DayPlan, error) {
	for i := range e.Days {
		if e.Days[i].DayNumber == dayNumber {
			return &e.Days[i], nil
		}
	}
	return nil, ErrDayNotFound
}

func indexOf(day *DayPlan, itemID string) int {
	for i, item := range day.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func renumber(day *DayPlan) {
	for i := range day.Items {
		day.Items[i].OrderIndex = i
	}
}
