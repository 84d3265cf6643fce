package planner

import "fmt"

// Slot is the derived clock window of one activity. Values are always
// recomputed from the day's stored sequence, never cached.
type Slot struct {
	ItemID      string `json:"item_id"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	StartClock  string `json:"start_clock"`
	EndClock    string `json:"end_clock"`
	TransitMins int    `json:"transit_mins"`
}

type DaySchedule struct {
	DayNumber int    `json:"day_number"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
	TotalMins int    `json:"total_mins"`
	EndClock  string `json:"end_clock"`
	Slots     []Slot `json:"slots"`
}

// Schedule derives clock times for one day: each activity starts where
// the previous one ended plus its transit gap.
func Schedule(day DayPlan) DaySchedule {
	current := day.StartTime
	slots := make([]Slot, 0, len(day.Items))
	for i, item := range day.Items {
		transit := item.TransitMins
		if transit == 0 {
			transit = DefaultTransitMins
		}
		slot := Slot{
			ItemID:      item.ID,
			Start:       current,
			End:         current + item.DurationMins,
			TransitMins: transit,
		}
		slot.StartClock = Clock(slot.Start)
		slot.EndClock = Clock(slot.End)
		slots = append(slots, slot)

		current = slot.End
		if i < len(day.Items)-1 {
			current += transit
		}
	}

	sched := DaySchedule{
		DayNumber: day.DayNumber,
		StartTime: day.StartTime,
		EndTime:   current,
		TotalMins: current - day.StartTime,
		EndClock:  Clock(current),
		Slots:     slots,
	}
	return sched
}

// Clock renders minutes-from-midnight as HH:MM.
func Clock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
