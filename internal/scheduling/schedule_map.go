package scheduling

import (
	"sort"
	"time"

	"scholartrack_backend/internal/models"

	"github.com/rs/zerolog/log"
)

// SlotKind distinguishes where a schedule slot came from.
type SlotKind string

const (
	SlotKindClass SlotKind = "class"
	SlotKindDuty  SlotKind = "duty"
)

// Slot is a single obligation window within a weekday: a class period or an
// assigned duty-hour window. Times are canonical "HH:MM", interpreted as the
// half-open interval [Start, End).
type Slot struct {
	Start       string   `json:"start_time"`
	End         string   `json:"end_time"`
	Kind        SlotKind `json:"kind"`
	Description string   `json:"description,omitempty"`
}

// ScheduleMap maps each weekday to its time-ordered obligation slots.
// It is derived on demand from class-schedule entries plus duty-hour
// windows and is never persisted.
type ScheduleMap map[time.Weekday][]Slot

// BuildScheduleMap merges class-schedule entries and duty-hour windows into
// one per-weekday, start-time-sorted slot list. Overlapping slots are kept
// distinct: overlap is rejected at duty-window assignment time, not here, so
// historical data that predates the conflict check still renders.
func BuildScheduleMap(classEntries []models.ClassScheduleEntry, dutyWindows []models.DutyHourWindow) ScheduleMap {
	m := make(ScheduleMap)

	for _, entry := range classEntries {
		days, start, end := ParseScheduleString(entry.Schedule)
		for _, day := range days {
			m[day] = append(m[day], Slot{
				Start:       start,
				End:         end,
				Kind:        SlotKindClass,
				Description: entry.Subject,
			})
		}
	}

	for _, window := range dutyWindows {
		day, err := ResolveWeekday(window.Day)
		if err != nil {
			log.Warn().Str("day", window.Day).Int64("window_id", window.ID).
				Msg("Duty window has unresolvable weekday, skipping slot")
			continue
		}
		m[day] = append(m[day], Slot{
			Start:       window.StartTime,
			End:         window.EndTime,
			Kind:        SlotKindDuty,
			Description: window.Location,
		})
	}

	// Zero-padded "HH:MM" sorts lexicographically in time order.
	for day := range m {
		slots := m[day]
		sort.SliceStable(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
		m[day] = slots
	}
	return m
}

// Overlaps reports whether the half-open interval [start, end) intersects
// the slot's [Start, End).
func (s Slot) Overlaps(start, end string) bool {
	return start < s.End && end > s.Start
}

// HasConflict reports whether a candidate window [start, end) on the given
// weekday intersects any existing slot (class or duty).
func (m ScheduleMap) HasConflict(day time.Weekday, start, end string) bool {
	for _, slot := range m[day] {
		if slot.Overlaps(start, end) {
			return true
		}
	}
	return false
}
