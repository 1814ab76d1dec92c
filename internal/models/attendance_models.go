package models

import "time"

// AttendanceRecord statuses (record-level review workflow).
const (
	RecordStatusDraft     = "draft"
	RecordStatusSubmitted = "submitted"
	RecordStatusApproved  = "approved"
	RecordStatusRejected  = "rejected"
)

// DayEntry confirmation statuses.
const (
	ConfirmationUnconfirmed = "unconfirmed"
	ConfirmationConfirmed   = "confirmed"
)

// DayEntry excused statuses.
const (
	ExcusedStatusNone    = "none"
	ExcusedStatusExcused = "excused"
)

// Day status labels forced by exception states.
const (
	DayStatusExcused = "Excused"
	DayStatusAbsent  = "Absent"
)

// DailyMinutesCap is the policy ceiling on how many minutes a single
// confirmed day may contribute to the monthly total (5 hours).
const DailyMinutesCap = 300

// IsValidRecordStatus reports whether s is a known record status.
func IsValidRecordStatus(s string) bool {
	switch s {
	case RecordStatusDraft, RecordStatusSubmitted, RecordStatusApproved, RecordStatusRejected:
		return true
	}
	return false
}

// ShiftPair is one actual clock-in/clock-out pair for a day. Times are
// canonical "HH:MM"; an empty string means the side was never recorded.
type ShiftPair struct {
	In  string `json:"time_in,omitempty"`
	Out string `json:"time_out,omitempty"`
}

// IsEmpty reports whether neither side of the pair was recorded.
func (p ShiftPair) IsEmpty() bool {
	return p.In == "" && p.Out == ""
}

// FieldChange is a single before/after diff inside an edit-history item.
type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// EntryEdit is one append-only edit-history item recorded when an office
// actor changes a tracked field of a DayEntry.
type EntryEdit struct {
	ActorID   int64         `json:"actor_id"`
	ActorName string        `json:"actor_name"`
	Timestamp time.Time     `json:"timestamp"`
	Changes   []FieldChange `json:"changes"`
}

// DayEntry is one calendar day's attendance data within an AttendanceRecord.
// ShiftPairs is an ordered list; by convention pair 0 is the legacy AM slot
// and pair 1 the legacy PM slot, with any further pairs coming from the
// dynamic shift list. Entries are stored inside the record's JSONB document.
type DayEntry struct {
	Day                int         `json:"day"`
	ShiftPairs         []ShiftPair `json:"shift_pairs"`
	LateMinutes        int         `json:"late_minutes"`
	UndertimeMinutes   int         `json:"undertime_minutes"`
	TotalMinutes       int         `json:"total_minutes"`
	Status             string      `json:"status,omitempty"`
	ConfirmationStatus string      `json:"confirmation_status"`
	ConfirmedBy        *string     `json:"confirmed_by,omitempty"`
	ConfirmedAt        *time.Time  `json:"confirmed_at,omitempty"`
	ExcusedStatus      string      `json:"excused_status"`
	ExcusedReason      *string     `json:"excused_reason,omitempty"`
	EditHistory        []EntryEdit `json:"edit_history,omitempty"`
}

// AttendanceRecord ("DTR") is one person's attendance book for one calendar
// month. Exactly one record may exist per (person, month, year); the
// storage layer enforces this with a unique constraint.
type AttendanceRecord struct {
	ID                  int64      `json:"id" db:"id"`
	PersonID            int64      `json:"person_id" db:"person_id"`
	Month               int        `json:"month" db:"month"` // 1..12
	Year                int        `json:"year" db:"year"`
	Status              string     `json:"status" db:"status"`
	TotalMonthlyMinutes int        `json:"total_monthly_minutes" db:"total_monthly_minutes"`
	Entries             []DayEntry `json:"entries"`
	Remarks             *string    `json:"remarks,omitempty" db:"remarks"`
	Version             int64      `json:"version" db:"version"` // optimistic concurrency token
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// EntryForDay returns a pointer to the entry for the given calendar day,
// or nil when the day is outside the record's materialized range.
func (r *AttendanceRecord) EntryForDay(day int) *DayEntry {
	for i := range r.Entries {
		if r.Entries[i].Day == day {
			return &r.Entries[i]
		}
	}
	return nil
}
