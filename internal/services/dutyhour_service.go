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

// --- Custom Service Errors for Duty Hours ---
var (
	ErrDutyWindowNotFound   = errors.New("duty hour window not found")
	ErrDutyWindowValidation = errors.New("duty hour window validation error")
	ErrDutyWindowOverlap    = errors.New("duty hour window overlaps an existing class or duty slot on that weekday")
)

// --- Duty-Hour DTOs ---
type AddDutyWindowRequest struct {
	Day       string  `json:"day" binding:"required"` // full weekday name
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Location  string  `json:"location" binding:"required"`
	Notes     *string `json:"notes"`
}

type RemoveDutyWindowRequest struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// --- DutyHourService Interface ---
type DutyHourService interface {
	AddDutyWindow(profileID int64, req AddDutyWindowRequest, actor Actor) (*models.DutyHourWindow, error)
	RemoveDutyWindow(profileID int64, req RemoveDutyWindowRequest, actor Actor) error
	GetDutyWindows(profileID int64) ([]models.DutyHourWindow, error)
}

// --- dutyHourService Implementation ---
type dutyHourService struct {
	scholarRepo repositories.ScholarRepository
	db          *sql.DB
}

// NewDutyHourService creates a new instance of DutyHourService.
func NewDutyHourService(sr repositories.ScholarRepository, db *sql.DB) DutyHourService {
	return &dutyHourService{
		scholarRepo: sr,
		db:          db,
	}
}

// AddDutyWindow validates the candidate window and rejects it when its
// half-open interval intersects any existing class or duty slot on the same
// weekday, then appends it with a last-modified stamp.
func (s *dutyHourService) AddDutyWindow(profileID int64, req AddDutyWindowRequest, actor Actor) (*models.DutyHourWindow, error) {
	for field, value := range map[string]string{"day": req.Day, "start_time": req.StartTime, "end_time": req.EndTime, "location": req.Location} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrDutyWindowValidation, field)
		}
	}

	weekday, err := scheduling.ResolveWeekday(req.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDutyWindowValidation, err)
	}

	start := scheduling.CanonicalTime(req.StartTime)
	end := scheduling.CanonicalTime(req.EndTime)
	if end <= start {
		return nil, fmt.Errorf("%w: end time %s must be after start time %s", ErrDutyWindowValidation, end, start)
	}

	if _, err := s.scholarRepo.GetProfileByID(profileID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to resolve profile %d: %w", profileID, err)
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
	if scheduleMap.HasConflict(weekday, start, end) {
		return nil, fmt.Errorf("%w: %s %s-%s", ErrDutyWindowOverlap, weekday, start, end)
	}

	now := time.Now()
	actorName := actor.Name
	window := &models.DutyHourWindow{
		ProfileID:      profileID,
		Day:            weekday.String(),
		StartTime:      start,
		EndTime:        end,
		Location:       strings.TrimSpace(req.Location),
		Notes:          req.Notes,
		LastModifiedBy: &actorName,
		LastModifiedAt: &now,
	}
	created, err := s.scholarRepo.CreateDutyWindow(s.db, window)
	if err != nil {
		return nil, fmt.Errorf("failed to create duty window: %w", err)
	}
	return created, nil
}

// RemoveDutyWindow deletes the window matching (day, start, end) exactly.
func (s *dutyHourService) RemoveDutyWindow(profileID int64, req RemoveDutyWindowRequest, actor Actor) error {
	weekday, err := scheduling.ResolveWeekday(req.Day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDutyWindowValidation, err)
	}
	start := scheduling.CanonicalTime(req.StartTime)
	end := scheduling.CanonicalTime(req.EndTime)

	err = s.scholarRepo.DeleteDutyWindow(s.db, profileID, weekday.String(), start, end)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDutyWindowNotFound
		}
		return fmt.Errorf("failed to remove duty window: %w", err)
	}
	return nil
}

func (s *dutyHourService) GetDutyWindows(profileID int64) ([]models.DutyHourWindow, error) {
	if _, err := s.scholarRepo.GetProfileByID(profileID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to resolve profile %d: %w", profileID, err)
	}
	windows, err := s.scholarRepo.GetDutyWindows(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list duty windows: %w", err)
	}
	return windows, nil
}
