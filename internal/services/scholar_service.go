package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"scholartrack_backend/internal/models"
	"scholartrack_backend/internal/repositories"
	"scholartrack_backend/internal/scheduling"
)

// --- Custom Service Errors for Scholar Profiles ---
var (
	ErrProfileNotFound        = errors.New("scholar profile not found")
	ErrProfileExists          = errors.New("user already has a scholar or trainee profile")
	ErrProfileValidation      = errors.New("scholar profile validation error")
	ErrScheduleEntryNotFound  = errors.New("class schedule entry not found")
	ErrScheduleEntryInvalid   = errors.New("class schedule entry validation error")
	ErrProfileUserNotFound    = errors.New("user account for profile not found")
)

// --- Scholar DTOs ---
type CreateProfileRequest struct {
	UserID     int64   `json:"user_id" binding:"required"`
	Kind       string  `json:"kind" binding:"required"` // scholar | trainee
	OfficeName *string `json:"office_name"`
	Course     *string `json:"course"`
	SchoolName *string `json:"school_name"`
}

type AddClassScheduleEntryRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Schedule string `json:"schedule" binding:"required"` // e.g. "MW 7:00-8:30 AM"
}

// DaySchedule is the JSON rendering of one weekday of the derived schedule map.
type DaySchedule struct {
	Day   string            `json:"day"`
	Slots []scheduling.Slot `json:"slots"`
}

// --- ScholarService Interface ---
type ScholarService interface {
	CreateProfile(req CreateProfileRequest) (*models.ScholarProfile, error)
	GetProfileByID(profileID int64) (*models.ScholarProfile, error)
	GetProfileByUserID(userID int64) (*models.ScholarProfile, error)
	GetProfiles(page, pageSize int) ([]models.ScholarProfile, int, error)

	AddClassScheduleEntry(profileID int64, req AddClassScheduleEntryRequest) (*models.ClassScheduleEntry, error)
	RemoveClassScheduleEntry(profileID, entryID int64) error
	GetWeeklySchedule(profileID int64) ([]DaySchedule, error)
}

// --- scholarService Implementation ---
type scholarService struct {
	scholarRepo repositories.ScholarRepository
	authRepo    repositories.AuthRepository
	db          *sql.DB
}

// NewScholarService creates a new instance of ScholarService.
func NewScholarService(sr repositories.ScholarRepository, ar repositories.AuthRepository, db *sql.DB) ScholarService {
	return &scholarService{
		scholarRepo: sr,
		authRepo:    ar,
		db:          db,
	}
}

func (s *scholarService) CreateProfile(req CreateProfileRequest) (*models.ScholarProfile, error) {
	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind != models.ProfileKindScholar && kind != models.ProfileKindTrainee {
		return nil, fmt.Errorf("%w: kind must be %q or %q", ErrProfileValidation, models.ProfileKindScholar, models.ProfileKindTrainee)
	}

	if _, err := s.authRepo.FindUserByID(req.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user %d: %w", req.UserID, err)
	}

	profile := &models.ScholarProfile{
		UserID:     req.UserID,
		Kind:       kind,
		OfficeName: req.OfficeName,
		Course:     req.Course,
		SchoolName: req.SchoolName,
	}
	created, err := s.scholarRepo.CreateProfile(s.db, profile)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create scholar profile: %w", err)
	}
	return s.GetProfileByID(created.ID)
}

func (s *scholarService) GetProfileByID(profileID int64) (*models.ScholarProfile, error) {
	profile, err := s.scholarRepo.GetProfileByID(profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch scholar profile %d: %w", profileID, err)
	}
	return profile, nil
}

func (s *scholarService) GetProfileByUserID(userID int64) (*models.ScholarProfile, error) {
	profile, err := s.scholarRepo.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch scholar profile for user %d: %w", userID, err)
	}
	return profile, nil
}

func (s *scholarService) GetProfiles(page, pageSize int) ([]models.ScholarProfile, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	profiles, totalCount, err := s.scholarRepo.GetProfiles(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list scholar profiles: %w", err)
	}
	return profiles, totalCount, nil
}

// AddClassScheduleEntry attaches one uploaded subject schedule to the
// profile. The schedule string is kept verbatim; it only has to yield at
// least one weekday when parsed, so a completely undecodable upload is
// rejected here rather than silently producing an empty schedule.
func (s *scholarService) AddClassScheduleEntry(profileID int64, req AddClassScheduleEntryRequest) (*models.ClassScheduleEntry, error) {
	if _, err := s.GetProfileByID(profileID); err != nil {
		return nil, err
	}

	days, _, _ := scheduling.ParseScheduleString(req.Schedule)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no weekday could be decoded from %q", ErrScheduleEntryInvalid, req.Schedule)
	}

	entry := &models.ClassScheduleEntry{
		ProfileID: profileID,
		Subject:   strings.TrimSpace(req.Subject),
		Schedule:  strings.TrimSpace(req.Schedule),
	}
	created, err := s.scholarRepo.CreateClassScheduleEntry(s.db, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to add class schedule entry: %w", err)
	}
	return created, nil
}

func (s *scholarService) RemoveClassScheduleEntry(profileID, entryID int64) error {
	err := s.scholarRepo.DeleteClassScheduleEntry(s.db, profileID, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrScheduleEntryNotFound
		}
		return fmt.Errorf("failed to remove class schedule entry %d: %w", entryID, err)
	}
	return nil
}

// GetWeeklySchedule renders the derived schedule map for the profile as a
// Sunday-through-Saturday list.
func (s *scholarService) GetWeeklySchedule(profileID int64) ([]DaySchedule, error) {
	if _, err := s.GetProfileByID(profileID); err != nil {
		return nil, err
	}
	classEntries, err := s.scholarRepo.GetClassScheduleEntries(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load class schedule for profile %d: %w", profileID, err)
	}
	dutyWindows, err := s.scholarRepo.GetDutyWindows(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load duty windows for profile %d: %w", profileID, err)
	}

	scheduleMap := scheduling.BuildScheduleMap(classEntries, dutyWindows)
	week := make([]DaySchedule, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		slots := scheduleMap[d]
		if slots == nil {
			slots = []scheduling.Slot{}
		}
		week = append(week, DaySchedule{Day: d.String(), Slots: slots})
	}
	return week, nil
}
