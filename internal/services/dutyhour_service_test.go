package services

import (
	"errors"
	"testing"

	"scholartrack_backend/internal/models"
)

func newDutyHourFixture() (DutyHourService, *mockScholarRepo) {
	scholarRepo := newMockScholarRepo()
	scholarRepo.addProfile(1, 10)
	return NewDutyHourService(scholarRepo, nil), scholarRepo
}

func TestAddDutyWindowCanonicalizesAndStamps(t *testing.T) {
	svc, _ := newDutyHourFixture()

	window, err := svc.AddDutyWindow(1, AddDutyWindowRequest{
		Day:       "monday",
		StartTime: "1:00 PM",
		EndTime:   "5:00 PM",
		Location:  "Records Office",
	}, officeActor)
	if err != nil {
		t.Fatalf("AddDutyWindow returned error: %v", err)
	}
	if window.Day != "Monday" {
		t.Errorf("expected day Monday, got %q", window.Day)
	}
	if window.StartTime != "13:00" || window.EndTime != "17:00" {
		t.Errorf("expected canonical 13:00-17:00, got %s-%s", window.StartTime, window.EndTime)
	}
	if window.LastModifiedBy == nil || *window.LastModifiedBy != officeActor.Name {
		t.Error("expected last-modified stamp with the actor's name")
	}
	if window.LastModifiedAt == nil {
		t.Error("expected last-modified timestamp")
	}
}

func TestAddDutyWindowRejectsClassOverlap(t *testing.T) {
	svc, scholarRepo := newDutyHourFixture()
	scholarRepo.classEntries[1] = []models.ClassScheduleEntry{
		{ID: 1, ProfileID: 1, Subject: "Calculus", Schedule: "MW 7:00-8:30 AM"},
	}

	// 8:00-9:00 intersects the 7:00-8:30 class on Monday.
	_, err := svc.AddDutyWindow(1, AddDutyWindowRequest{
		Day:       "Monday",
		StartTime: "8:00 AM",
		EndTime:   "9:00 AM",
		Location:  "Library",
	}, officeActor)
	if !errors.Is(err, ErrDutyWindowOverlap) {
		t.Fatalf("expected ErrDutyWindowOverlap, got %v", err)
	}

	// Back-to-back at 8:30 is allowed: intervals are half-open.
	if _, err := svc.AddDutyWindow(1, AddDutyWindowRequest{
		Day:       "Monday",
		StartTime: "8:30 AM",
		EndTime:   "9:30 AM",
		Location:  "Library",
	}, officeActor); err != nil {
		t.Fatalf("back-to-back window should be accepted, got %v", err)
	}

	// Wednesday at the same hours is free of the Monday window just added,
	// but still conflicts with the MW class.
	if _, err := svc.AddDutyWindow(1, AddDutyWindowRequest{
		Day:       "Wednesday",
		StartTime: "7:30 AM",
		EndTime:   "8:00 AM",
		Location:  "Library",
	}, officeActor); !errors.Is(err, ErrDutyWindowOverlap) {
		t.Errorf("expected ErrDutyWindowOverlap on Wednesday, got %v", err)
	}
}

func TestAddDutyWindowRejectsDutyOverlap(t *testing.T) {
	svc, _ := newDutyHourFixture()

	if _, err := svc.AddDutyWindow(1, AddDutyWindowRequest{
		Day: "Friday", StartTime: "13:00", EndTime: "15:00", Location: "Registrar",
	}, officeActor); err != nil {
		t.Fatalf("first window rejected: %v", err)
	}
	if _, err := svc.AddDutyWindow(1, AddDutyWindowRequest{
		Day: "Friday", StartTime: "14:00", EndTime: "16:00", Location: "Registrar",
	}, officeActor); !errors.Is(err, ErrDutyWindowOverlap) {
		t.Errorf("expected ErrDutyWindowOverlap against the existing duty window, got %v", err)
	}
}

func TestAddDutyWindowValidation(t *testing.T) {
	svc, _ := newDutyHourFixture()

	tests := []struct {
		name string
		req  AddDutyWindowRequest
	}{
		{"missing location", AddDutyWindowRequest{Day: "Monday", StartTime: "08:00", EndTime: "09:00"}},
		{"unknown weekday", AddDutyWindowRequest{Day: "Moonday", StartTime: "08:00", EndTime: "09:00", Location: "x"}},
		{"end before start", AddDutyWindowRequest{Day: "Monday", StartTime: "10:00", EndTime: "09:00", Location: "x"}},
		{"zero length", AddDutyWindowRequest{Day: "Monday", StartTime: "09:00", EndTime: "09:00", Location: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddDutyWindow(1, tt.req, officeActor); !errors.Is(err, ErrDutyWindowValidation) {
				t.Errorf("expected ErrDutyWindowValidation, got %v", err)
			}
		})
	}
}

func TestAddDutyWindowUnknownProfile(t *testing.T) {
	svc, _ := newDutyHourFixture()

	if _, err := svc.AddDutyWindow(42, AddDutyWindowRequest{
		Day: "Monday", StartTime: "08:00", EndTime: "09:00", Location: "x",
	}, officeActor); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestRemoveDutyWindowExactMatch(t *testing.T) {
	svc, _ := newDutyHourFixture()

	if _, err := svc.AddDutyWindow(1, AddDutyWindowRequest{
		Day: "Tuesday", StartTime: "9:00 AM", EndTime: "11:00 AM", Location: "Library",
	}, officeActor); err != nil {
		t.Fatalf("AddDutyWindow returned error: %v", err)
	}

	// Wrong end time: no match.
	err := svc.RemoveDutyWindow(1, RemoveDutyWindowRequest{Day: "Tuesday", StartTime: "09:00", EndTime: "12:00"}, officeActor)
	if !errors.Is(err, ErrDutyWindowNotFound) {
		t.Errorf("expected ErrDutyWindowNotFound, got %v", err)
	}

	// Raw meridiem input matches after canonicalization.
	if err := svc.RemoveDutyWindow(1, RemoveDutyWindowRequest{Day: "tuesday", StartTime: "9:00 AM", EndTime: "11:00 AM"}, officeActor); err != nil {
		t.Fatalf("RemoveDutyWindow returned error: %v", err)
	}

	windows, err := svc.GetDutyWindows(1)
	if err != nil {
		t.Fatalf("GetDutyWindows returned error: %v", err)
	}
	if len(windows) != 0 {
		t.Errorf("expected no windows left, got %d", len(windows))
	}
}
