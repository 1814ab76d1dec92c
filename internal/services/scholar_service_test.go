package services

import (
	"errors"
	"testing"

	"scholartrack_backend/internal/models"
)

func newScholarFixture() (ScholarService, *mockScholarRepo, *mockAuthRepo) {
	scholarRepo := newMockScholarRepo()
	authRepo := newMockAuthRepo()
	authRepo.addUser(10, "juandelacruz")
	return NewScholarService(scholarRepo, authRepo, nil), scholarRepo, authRepo
}

func TestCreateProfileValidatesKind(t *testing.T) {
	svc, _, _ := newScholarFixture()

	if _, err := svc.CreateProfile(CreateProfileRequest{UserID: 10, Kind: "employee"}); !errors.Is(err, ErrProfileValidation) {
		t.Errorf("expected ErrProfileValidation for unknown kind, got %v", err)
	}

	profile, err := svc.CreateProfile(CreateProfileRequest{UserID: 10, Kind: "  Trainee "})
	if err != nil {
		t.Fatalf("CreateProfile returned error: %v", err)
	}
	if profile.Kind != models.ProfileKindTrainee {
		t.Errorf("expected normalized kind %q, got %q", models.ProfileKindTrainee, profile.Kind)
	}
}

func TestCreateProfileRequiresExistingUser(t *testing.T) {
	svc, _, _ := newScholarFixture()

	if _, err := svc.CreateProfile(CreateProfileRequest{UserID: 404, Kind: "scholar"}); !errors.Is(err, ErrProfileUserNotFound) {
		t.Errorf("expected ErrProfileUserNotFound, got %v", err)
	}
}

func TestCreateProfileOnePerUser(t *testing.T) {
	svc, _, _ := newScholarFixture()

	if _, err := svc.CreateProfile(CreateProfileRequest{UserID: 10, Kind: "scholar"}); err != nil {
		t.Fatalf("first CreateProfile returned error: %v", err)
	}
	if _, err := svc.CreateProfile(CreateProfileRequest{UserID: 10, Kind: "trainee"}); !errors.Is(err, ErrProfileExists) {
		t.Errorf("expected ErrProfileExists, got %v", err)
	}
}

func TestAddClassScheduleEntryRejectsUndecodable(t *testing.T) {
	svc, scholarRepo, _ := newScholarFixture()
	scholarRepo.addProfile(1, 10)

	if _, err := svc.AddClassScheduleEntry(1, AddClassScheduleEntryRequest{
		Subject:  "Calculus",
		Schedule: "whenever we feel like it",
	}); !errors.Is(err, ErrScheduleEntryInvalid) {
		t.Errorf("expected ErrScheduleEntryInvalid, got %v", err)
	}

	entry, err := svc.AddClassScheduleEntry(1, AddClassScheduleEntryRequest{
		Subject:  "Calculus",
		Schedule: "MW 7:00-8:30 AM",
	})
	if err != nil {
		t.Fatalf("AddClassScheduleEntry returned error: %v", err)
	}
	if entry.Schedule != "MW 7:00-8:30 AM" {
		t.Errorf("schedule string should be kept verbatim, got %q", entry.Schedule)
	}
}

func TestGetWeeklyScheduleMergesClassAndDuty(t *testing.T) {
	svc, scholarRepo, _ := newScholarFixture()
	scholarRepo.addProfile(1, 10)
	scholarRepo.classEntries[1] = []models.ClassScheduleEntry{
		{ID: 1, ProfileID: 1, Subject: "Calculus", Schedule: "MW 7:00-8:30 AM"},
	}
	scholarRepo.dutyWindows[1] = []models.DutyHourWindow{
		{ProfileID: 1, Day: "Monday", StartTime: "13:00", EndTime: "17:00", Location: "Registrar"},
	}

	week, err := svc.GetWeeklySchedule(1)
	if err != nil {
		t.Fatalf("GetWeeklySchedule returned error: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 weekdays, got %d", len(week))
	}
	if week[0].Day != "Sunday" || week[6].Day != "Saturday" {
		t.Errorf("expected Sunday..Saturday ordering, got %s..%s", week[0].Day, week[6].Day)
	}

	var monday, wednesday, tuesday DaySchedule
	for _, day := range week {
		switch day.Day {
		case "Monday":
			monday = day
		case "Wednesday":
			wednesday = day
		case "Tuesday":
			tuesday = day
		}
	}
	if len(monday.Slots) != 2 {
		t.Fatalf("expected class + duty slots on Monday, got %d", len(monday.Slots))
	}
	if monday.Slots[0].Start != "07:00" || monday.Slots[0].End != "08:30" {
		t.Errorf("expected Monday class slot 07:00-08:30, got %s-%s", monday.Slots[0].Start, monday.Slots[0].End)
	}
	if monday.Slots[1].Start != "13:00" {
		t.Errorf("expected duty slot sorted after the class slot, got start %s", monday.Slots[1].Start)
	}
	if len(wednesday.Slots) != 1 {
		t.Errorf("expected only the class slot on Wednesday, got %d", len(wednesday.Slots))
	}
	if len(tuesday.Slots) != 0 {
		t.Errorf("expected no slots on Tuesday, got %d", len(tuesday.Slots))
	}
}

func TestRemoveClassScheduleEntryNotFound(t *testing.T) {
	svc, scholarRepo, _ := newScholarFixture()
	scholarRepo.addProfile(1, 10)

	if err := svc.RemoveClassScheduleEntry(1, 999); !errors.Is(err, ErrScheduleEntryNotFound) {
		t.Errorf("expected ErrScheduleEntryNotFound, got %v", err)
	}
}
