package scheduling

import (
	"testing"
	"time"

	"scholartrack_backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildScheduleMap_MergesAndSorts(t *testing.T) {
	classEntries := []models.ClassScheduleEntry{
		{Subject: "MATH 101", Schedule: "MW 7:00-8:30 AM"},
		{Subject: "PHYS 1", Schedule: "M 1:00-2:30 PM"},
	}
	dutyWindows := []models.DutyHourWindow{
		{Day: "Monday", StartTime: "09:00", EndTime: "11:00", Location: "Records Office"},
	}

	m := BuildScheduleMap(classEntries, dutyWindows)

	monday := m[time.Monday]
	if len(monday) != 3 {
		t.Fatalf("Monday slots = %d, want 3", len(monday))
	}
	// Sorted by start time: 07:00 class, 09:00 duty, 13:00 class.
	if monday[0].Start != "07:00" || monday[0].Kind != SlotKindClass {
		t.Errorf("slot 0 = %+v, want 07:00 class", monday[0])
	}
	if monday[1].Start != "09:00" || monday[1].Kind != SlotKindDuty {
		t.Errorf("slot 1 = %+v, want 09:00 duty", monday[1])
	}
	if monday[2].Start != "13:00" || monday[2].Description != "PHYS 1" {
		t.Errorf("slot 2 = %+v, want 13:00 PHYS 1", monday[2])
	}

	wednesday := m[time.Wednesday]
	if len(wednesday) != 1 || wednesday[0].End != "08:30" {
		t.Errorf("Wednesday slots = %+v, want single 07:00-08:30 class", wednesday)
	}
}

func TestBuildScheduleMap_KeepsOverlappingSlots(t *testing.T) {
	// Overlap is only rejected at assignment time; historical data that
	// predates the conflict check must still render.
	dutyWindows := []models.DutyHourWindow{
		{Day: "Tuesday", StartTime: "08:00", EndTime: "10:00", Location: "A"},
		{Day: "Tuesday", StartTime: "09:00", EndTime: "11:00", Location: "B"},
	}
	m := BuildScheduleMap(nil, dutyWindows)
	if len(m[time.Tuesday]) != 2 {
		t.Fatalf("Tuesday slots = %d, want 2 distinct overlapping slots", len(m[time.Tuesday]))
	}
}

func TestBuildScheduleMap_SkipsUnresolvableWeekday(t *testing.T) {
	dutyWindows := []models.DutyHourWindow{
		{Day: "Mondy", StartTime: "08:00", EndTime: "10:00", Location: "A"},
	}
	m := BuildScheduleMap(nil, dutyWindows)
	for day, slots := range m {
		if len(slots) != 0 {
			t.Errorf("unexpected slots on %v: %+v", day, slots)
		}
	}
}

func TestHasConflict(t *testing.T) {
	m := BuildScheduleMap(nil, []models.DutyHourWindow{
		{Day: "Monday", StartTime: "08:00", EndTime: "10:00", Location: "Office", Notes: strPtr("weekly")},
	})

	// Half-open interval overlap: 09:00 < 10:00 && 11:00 > 08:00.
	if !m.HasConflict(time.Monday, "09:00", "11:00") {
		t.Error("expected conflict for 09:00-11:00 against 08:00-10:00")
	}
	// Touching endpoints do not overlap.
	if m.HasConflict(time.Monday, "10:00", "12:00") {
		t.Error("back-to-back window 10:00-12:00 should not conflict")
	}
	if m.HasConflict(time.Monday, "06:00", "08:00") {
		t.Error("window ending at existing start should not conflict")
	}
	// Same interval on another weekday is fine.
	if m.HasConflict(time.Tuesday, "09:00", "11:00") {
		t.Error("different weekday should not conflict")
	}
	// Containment both ways.
	if !m.HasConflict(time.Monday, "08:30", "09:30") {
		t.Error("contained window should conflict")
	}
	if !m.HasConflict(time.Monday, "07:00", "12:00") {
		t.Error("containing window should conflict")
	}
}
