package scheduling

import (
	"sort"
	"time"

	"scholartrack_backend/internal/models"
)

// ReconcileResult is the outcome of comparing a day's recorded shift pairs
// against the schedule map. ScheduledStart/End are informational: the first
// slot's start and the last slot's end for the day.
type ReconcileResult struct {
	LateMinutes      int     `json:"late_minutes"`
	UndertimeMinutes int     `json:"undertime_minutes"`
	ScheduledStart   *string `json:"scheduled_start,omitempty"`
	ScheduledEnd     *string `json:"scheduled_end,omitempty"`
}

// Reconcile computes lateness and undertime for one calendar date by
// comparing the recorded shift pairs against that weekday's schedule slots.
//
// Duty-kind slots take precedence over class slots when any exist for the
// day, since an assigned duty window is the person's actual present-day
// obligation. Slot i is matched to recorded pair i by position — a
// best-effort ordinal pairing kept for compatibility with historical
// records, not a true interval match. A scheduled slot with no recorded
// clock-out never accrues undertime; only an explicit early out counts.
func Reconcile(date time.Time, actual []models.ShiftPair, m ScheduleMap) ReconcileResult {
	slots := m[date.Weekday()]
	if duty := filterKind(slots, SlotKindDuty); len(duty) > 0 {
		slots = duty
	}
	if len(slots) == 0 {
		// An unscheduled day cannot be late or under.
		return ReconcileResult{}
	}

	pairs := normalizePairs(actual)

	var result ReconcileResult
	for i := 0; i < len(slots) && i < len(pairs); i++ {
		slot, pair := slots[i], pairs[i]
		if pair.In != "" {
			if late := MinutesOfDay(CanonicalTime(pair.In)) - MinutesOfDay(slot.Start); late > 0 {
				result.LateMinutes += late
			}
		}
		if pair.Out != "" {
			if under := MinutesOfDay(slot.End) - MinutesOfDay(CanonicalTime(pair.Out)); under > 0 {
				result.UndertimeMinutes += under
			}
		}
	}

	start := slots[0].Start
	end := slots[len(slots)-1].End
	result.ScheduledStart = &start
	result.ScheduledEnd = &end
	return result
}

// normalizePairs drops fully-empty pairs and sorts by clock-in time, with
// in-less pairs ordered last.
func normalizePairs(actual []models.ShiftPair) []models.ShiftPair {
	pairs := make([]models.ShiftPair, 0, len(actual))
	for _, p := range actual {
		if !p.IsEmpty() {
			pairs = append(pairs, p)
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].In == "" {
			return false
		}
		if pairs[j].In == "" {
			return true
		}
		return CanonicalTime(pairs[i].In) < CanonicalTime(pairs[j].In)
	})
	return pairs
}

func filterKind(slots []Slot, kind SlotKind) []Slot {
	var filtered []Slot
	for _, s := range slots {
		if s.Kind == kind {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
