package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scholartrack_backend/internal/models"
)

// ScholarRepository defines the interface for scholar/trainee profile
// operations, including the class-schedule entries and duty-hour windows
// attached to a profile.
type ScholarRepository interface {
	CreateProfile(executor SQLExecutor, profile *models.ScholarProfile) (*models.ScholarProfile, error)
	GetProfileByID(profileID int64) (*models.ScholarProfile, error)
	GetProfileByUserID(userID int64) (*models.ScholarProfile, error)
	GetProfiles(page, pageSize int) ([]models.ScholarProfile, int, error)

	CreateClassScheduleEntry(executor SQLExecutor, entry *models.ClassScheduleEntry) (*models.ClassScheduleEntry, error)
	DeleteClassScheduleEntry(executor SQLExecutor, profileID, entryID int64) error
	GetClassScheduleEntries(profileID int64) ([]models.ClassScheduleEntry, error)

	CreateDutyWindow(executor SQLExecutor, window *models.DutyHourWindow) (*models.DutyHourWindow, error)
	DeleteDutyWindow(executor SQLExecutor, profileID int64, day, startTime, endTime string) error
	GetDutyWindows(profileID int64) ([]models.DutyHourWindow, error)
}

type scholarRepository struct {
	db *sql.DB
}

// NewScholarRepository creates a new instance of ScholarRepository.
func NewScholarRepository(db *sql.DB) ScholarRepository {
	return &scholarRepository{db: db}
}

func (r *scholarRepository) CreateProfile(executor SQLExecutor, profile *models.ScholarProfile) (*models.ScholarProfile, error) {
	query := `INSERT INTO scholar_profiles (user_id, kind, office_name, course, school_name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query,
		profile.UserID, profile.Kind, profile.OfficeName, profile.Course, profile.SchoolName,
		currentTime, currentTime,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		// A person holds at most one schedule-bearing profile.
		if IsUniqueViolation(err, "scholar_profiles_user_id_key") {
			return nil, fmt.Errorf("%w: profile already exists for user %d", ErrDuplicateKey, profile.UserID)
		}
		return nil, fmt.Errorf("%w: creating scholar profile: %v", ErrDatabaseError, err)
	}
	return profile, nil
}

func (r *scholarRepository) GetProfileByID(profileID int64) (*models.ScholarProfile, error) {
	return r.getProfile(`WHERE sp.id = $1`, profileID)
}

func (r *scholarRepository) GetProfileByUserID(userID int64) (*models.ScholarProfile, error) {
	return r.getProfile(`WHERE sp.user_id = $1`, userID)
}

func (r *scholarRepository) getProfile(where string, arg interface{}) (*models.ScholarProfile, error) {
	query := `
		SELECT sp.id, sp.user_id, sp.kind, sp.office_name, sp.course, sp.school_name, sp.created_at, sp.updated_at,
		       u.username, u.email, u.full_name, u.is_active
		FROM scholar_profiles sp
		JOIN users u ON u.id = sp.user_id ` + where

	profile := &models.ScholarProfile{}
	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&profile.ID, &profile.UserID, &profile.Kind, &profile.OfficeName, &profile.Course, &profile.SchoolName,
		&profile.CreatedAt, &profile.UpdatedAt,
		&user.Username, &user.Email, &user.FullName, &user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching scholar profile: %v", ErrDatabaseError, err)
	}
	user.ID = profile.UserID
	profile.User = user
	return profile, nil
}

func (r *scholarRepository) GetProfiles(page, pageSize int) ([]models.ScholarProfile, int, error) {
	offset := (page - 1) * pageSize
	query := `
		SELECT sp.id, sp.user_id, sp.kind, sp.office_name, sp.course, sp.school_name, sp.created_at, sp.updated_at,
		       u.username, u.email, u.full_name, u.is_active,
		       COUNT(*) OVER() AS total_count
		FROM scholar_profiles sp
		JOIN users u ON u.id = sp.user_id
		ORDER BY sp.id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing scholar profiles: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var profiles []models.ScholarProfile
	totalCount := 0
	for rows.Next() {
		var profile models.ScholarProfile
		var user models.User
		if err := rows.Scan(
			&profile.ID, &profile.UserID, &profile.Kind, &profile.OfficeName, &profile.Course, &profile.SchoolName,
			&profile.CreatedAt, &profile.UpdatedAt,
			&user.Username, &user.Email, &user.FullName, &user.IsActive,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning scholar profile: %v", ErrDatabaseError, err)
		}
		user.ID = profile.UserID
		profile.User = &user
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating scholar profiles: %v", ErrDatabaseError, err)
	}
	return profiles, totalCount, nil
}

func (r *scholarRepository) CreateClassScheduleEntry(executor SQLExecutor, entry *models.ClassScheduleEntry) (*models.ClassScheduleEntry, error) {
	query := `INSERT INTO class_schedule_entries (profile_id, subject, schedule, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := executor.QueryRow(query, entry.ProfileID, entry.Subject, entry.Schedule, time.Now()).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating class schedule entry: %v", ErrDatabaseError, err)
	}
	return entry, nil
}

func (r *scholarRepository) DeleteClassScheduleEntry(executor SQLExecutor, profileID, entryID int64) error {
	result, err := executor.Exec(`DELETE FROM class_schedule_entries WHERE id = $1 AND profile_id = $2`, entryID, profileID)
	if err != nil {
		return fmt.Errorf("%w: deleting class schedule entry: %v", ErrDatabaseError, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting class schedule entry: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *scholarRepository) GetClassScheduleEntries(profileID int64) ([]models.ClassScheduleEntry, error) {
	query := `SELECT id, profile_id, subject, schedule, created_at
	          FROM class_schedule_entries WHERE profile_id = $1 ORDER BY id`
	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing class schedule entries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var entries []models.ClassScheduleEntry
	for rows.Next() {
		var entry models.ClassScheduleEntry
		if err := rows.Scan(&entry.ID, &entry.ProfileID, &entry.Subject, &entry.Schedule, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning class schedule entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating class schedule entries: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

func (r *scholarRepository) CreateDutyWindow(executor SQLExecutor, window *models.DutyHourWindow) (*models.DutyHourWindow, error) {
	query := `INSERT INTO duty_hour_windows
	            (profile_id, day, start_time, end_time, location, notes, last_modified_by, last_modified_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at`
	err := executor.QueryRow(query,
		window.ProfileID, window.Day, window.StartTime, window.EndTime, window.Location,
		window.Notes, window.LastModifiedBy, window.LastModifiedAt, time.Now(),
	).Scan(&window.ID, &window.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating duty window: %v", ErrDatabaseError, err)
	}
	return window, nil
}

func (r *scholarRepository) DeleteDutyWindow(executor SQLExecutor, profileID int64, day, startTime, endTime string) error {
	query := `DELETE FROM duty_hour_windows
	          WHERE profile_id = $1 AND day = $2 AND start_time = $3 AND end_time = $4`
	result, err := executor.Exec(query, profileID, day, startTime, endTime)
	if err != nil {
		return fmt.Errorf("%w: deleting duty window: %v", ErrDatabaseError, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting duty window: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *scholarRepository) GetDutyWindows(profileID int64) ([]models.DutyHourWindow, error) {
	query := `SELECT id, profile_id, day, start_time, end_time, location, notes, last_modified_by, last_modified_at, created_at
	          FROM duty_hour_windows WHERE profile_id = $1 ORDER BY day, start_time`
	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing duty windows: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var windows []models.DutyHourWindow
	for rows.Next() {
		var window models.DutyHourWindow
		if err := rows.Scan(
			&window.ID, &window.ProfileID, &window.Day, &window.StartTime, &window.EndTime,
			&window.Location, &window.Notes, &window.LastModifiedBy, &window.LastModifiedAt, &window.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning duty window: %v", ErrDatabaseError, err)
		}
		windows = append(windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating duty windows: %v", ErrDatabaseError, err)
	}
	return windows, nil
}
