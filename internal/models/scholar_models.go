package models

import "time"

// Profile kinds. A person holds exactly one schedule-bearing profile:
// either a trainee profile or a scholar profile, never both.
const (
	ProfileKindScholar = "scholar"
	ProfileKindTrainee = "trainee"
)

// ScholarProfile is the schedule-bearing entity for a scholar or trainee.
// Class-schedule entries and duty-hour windows attach to it, and its
// UserID links it to the login account.
type ScholarProfile struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	Kind       string    `json:"kind" db:"kind"` // scholar | trainee
	OfficeName *string   `json:"office_name,omitempty" db:"office_name"`
	Course     *string   `json:"course,omitempty" db:"course"`
	SchoolName *string   `json:"school_name,omitempty" db:"school_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
	User       *User     `json:"user,omitempty"` // joined login account details
}

// ClassScheduleEntry is one subject's schedule as uploaded, e.g.
// {Subject: "MATH 101", Schedule: "MW 7:00-8:30 AM"}. The schedule string
// is parsed by the scheduling package but never mutated here.
type ClassScheduleEntry struct {
	ID        int64     `json:"id" db:"id"`
	ProfileID int64     `json:"profile_id" db:"profile_id"`
	Subject   string    `json:"subject" db:"subject"`
	Schedule  string    `json:"schedule" db:"schedule"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DutyHourWindow is an office-assigned work window on a single weekday.
// Start/end times are canonical "HH:MM" with end strictly after start, and
// a new window must not overlap any existing slot on the same weekday.
type DutyHourWindow struct {
	ID             int64      `json:"id" db:"id"`
	ProfileID      int64      `json:"profile_id" db:"profile_id"`
	Day            string     `json:"day" db:"day"` // full weekday name, e.g. "Monday"
	StartTime      string     `json:"start_time" db:"start_time"`
	EndTime        string     `json:"end_time" db:"end_time"`
	Location       string     `json:"location" db:"location"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`
	LastModifiedBy *string    `json:"last_modified_by,omitempty" db:"last_modified_by"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty" db:"last_modified_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
