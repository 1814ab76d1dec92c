package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scholartrack_backend/internal/models"
	"scholartrack_backend/internal/repositories"
	"scholartrack_backend/internal/scheduling"
	"scholartrack_backend/pkg/utils"
)

// --- Custom Service Errors for Attendance ---
var (
	ErrRecordNotFound         = errors.New("attendance record not found")
	ErrEntryNotFound          = errors.New("day entry not found in attendance record")
	ErrRecordImmutable        = errors.New("attendance record is no longer editable in its current status")
	ErrRecordStatusTransition = errors.New("invalid attendance record status transition")
	ErrRecordConflict         = errors.New("attendance record was modified concurrently, please reload and retry")
	ErrAttendanceValidation   = errors.New("attendance data validation error")
)

// Actor identifies who performs an operation, for audit stamps and
// edit-history attribution. Supplied by the authenticated request context;
// the services treat it as opaque input.
type Actor struct {
	ID   int64
	Name string
	Role string
}

// --- Attendance DTOs ---

// ShiftPairInput is one dynamic shift pair in an edit payload. Nil means
// "leave unchanged"; an empty string clears the side.
type ShiftPairInput struct {
	In  *string `json:"time_in"`
	Out *string `json:"time_out"`
}

// EditEntryRequest carries a partial update for one day entry. The four
// AM/PM fields are the legacy fixed slots (stored as shift pairs 0 and 1);
// ExtraShifts, when present, replaces the dynamic pairs beyond those two.
type EditEntryRequest struct {
	TimeInAM    *string          `json:"time_in_am"`
	TimeOutAM   *string          `json:"time_out_am"`
	TimeInPM    *string          `json:"time_in_pm"`
	TimeOutPM   *string          `json:"time_out_pm"`
	ExtraShifts []ShiftPairInput `json:"extra_shifts"`
	Status      *string          `json:"status"`
}

// OfficeEditEntryRequest is an office-side entry edit: same merge semantics
// as EditEntryRequest, plus the ability to set confirmation directly.
type OfficeEditEntryRequest struct {
	TimeInAM           *string          `json:"time_in_am"`
	TimeOutAM          *string          `json:"time_out_am"`
	TimeInPM           *string          `json:"time_in_pm"`
	TimeOutPM          *string          `json:"time_out_pm"`
	ExtraShifts        []ShiftPairInput `json:"extra_shifts"`
	Status             *string          `json:"status"`
	ConfirmationStatus *string          `json:"confirmation_status"`
}

// MarkExcusedRequest marks a day excused or clears the excused state.
type MarkExcusedRequest struct {
	Excused            bool    `json:"excused"`
	Reason             *string `json:"reason"`
	ConfirmationStatus *string `json:"confirmation_status"`
}

// MarkAbsentRequest marks a day absent or clears the absent label.
type MarkAbsentRequest struct {
	Absent             bool    `json:"absent"`
	ConfirmationStatus *string `json:"confirmation_status"`
}

// --- AttendanceService Interface ---
type AttendanceService interface {
	GetOrCreateRecord(profileID int64, month, year int) (*models.AttendanceRecord, error)
	GetRecordByID(recordID int64) (*models.AttendanceRecord, error)
	GetRecordsByProfile(profileID int64) ([]models.AttendanceRecord, error)

	EditEntry(recordID int64, day int, req EditEntryRequest) (*models.AttendanceRecord, error)
	EditEntryAsOffice(recordID int64, day int, req OfficeEditEntryRequest, actor Actor) (*models.AttendanceRecord, error)
	ConfirmEntry(recordID int64, day int, actor Actor) (*models.AttendanceRecord, error)
	UnconfirmEntry(recordID int64, day int, actor Actor) (*models.AttendanceRecord, error)
	ConfirmAllEntries(recordID int64, actor Actor) (*models.AttendanceRecord, error)
	MarkExcused(recordID int64, day int, req MarkExcusedRequest, actor Actor) (*models.AttendanceRecord, error)
	MarkAbsent(recordID int64, day int, req MarkAbsentRequest, actor Actor) (*models.AttendanceRecord, error)

	SubmitRecord(recordID int64, actor Actor) (*models.AttendanceRecord, error)
	ApproveRecord(recordID int64, actor Actor) (*models.AttendanceRecord, error)
	RejectRecord(recordID int64, remarks string, actor Actor) (*models.AttendanceRecord, error)

	ReconcileEntry(recordID int64, day int) (*scheduling.ReconcileResult, error)
}

// --- attendanceService Implementation ---
type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	scholarRepo    repositories.ScholarRepository
	notifier       Notifier
	db             *sql.DB
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(
	ar repositories.AttendanceRepository,
	sr repositories.ScholarRepository,
	notifier Notifier,
	db *sql.DB,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: ar,
		scholarRepo:    sr,
		notifier:       notifier,
		db:             db,
	}
}

// GetOrCreateRecord returns the profile's attendance record for the period,
// creating it with empty day entries when absent. Idempotent: a concurrent
// create losing the unique-constraint race falls back to fetching the winner.
func (s *attendanceService) GetOrCreateRecord(profileID int64, month, year int) (*models.AttendanceRecord, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be within 1..12", ErrAttendanceValidation)
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year %d is out of range", ErrAttendanceValidation, year)
	}

	record, err := s.attendanceRepo.GetRecordByPersonPeriod(profileID, month, year)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to fetch attendance record: %w", err)
	}

	if _, err := s.scholarRepo.GetProfileByID(profileID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to resolve profile %d: %w", profileID, err)
	}

	record = &models.AttendanceRecord{
		PersonID: profileID,
		Month:    month,
		Year:     year,
		Status:   models.RecordStatusDraft,
		Entries:  materializeEntries(month, year),
	}
	created, err := s.attendanceRepo.CreateRecord(s.db, record)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost the race to another request; the record now exists.
			return s.attendanceRepo.GetRecordByPersonPeriod(profileID, month, year)
		}
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

// materializeEntries builds one empty DayEntry per calendar day of the
// month, each with the two legacy AM/PM shift pairs pre-allocated.
func materializeEntries(month, year int) []models.DayEntry {
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	entries := make([]models.DayEntry, daysInMonth)
	for i := range entries {
		entries[i] = models.DayEntry{
			Day:                i + 1,
			ShiftPairs:         []models.ShiftPair{{}, {}},
			ConfirmationStatus: models.ConfirmationUnconfirmed,
			ExcusedStatus:      models.ExcusedStatusNone,
		}
	}
	return entries
}

func (s *attendanceService) GetRecordByID(recordID int64) (*models.AttendanceRecord, error) {
	record, err := s.attendanceRepo.GetRecordByID(recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch attendance record %d: %w", recordID, err)
	}
	return record, nil
}

func (s *attendanceService) GetRecordsByProfile(profileID int64) ([]models.AttendanceRecord, error) {
	records, err := s.attendanceRepo.GetRecordsByPerson(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}

// loadEditableEntry fetches the record and locates the day entry, rejecting
// records whose review status no longer permits entry edits. Approved and
// rejected records are final.
func (s *attendanceService) loadEditableEntry(recordID int64, day int) (*models.AttendanceRecord, *models.DayEntry, error) {
	if day < 1 || day > 31 {
		return nil, nil, fmt.Errorf("%w: day must be within 1..31", ErrAttendanceValidation)
	}
	record, err := s.GetRecordByID(recordID)
	if err != nil {
		return nil, nil, err
	}
	if record.Status == models.RecordStatusApproved || record.Status == models.RecordStatusRejected {
		return nil, nil, fmt.Errorf("%w: record status is %s", ErrRecordImmutable, record.Status)
	}
	entry := record.EntryForDay(day)
	if entry == nil {
		return nil, nil, fmt.Errorf("%w: day %d of %d/%d", ErrEntryNotFound, day, record.Month, record.Year)
	}
	return record, entry, nil
}

// saveRecord recomputes the confirmation-gated monthly total and writes the
// record back under its version check.
func (s *attendanceService) saveRecord(record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	recomputeMonthlyTotal(record)
	updated, err := s.attendanceRepo.UpdateRecord(s.db, record)
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrRecordConflict
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to save attendance record %d: %w", record.ID, err)
	}
	return updated, nil
}

// notify dispatches a notification event best-effort. Dispatcher failures
// are logged and discarded; they never affect the saved state.
func (s *attendanceService) notify(event NotificationEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(event); err != nil {
		utils.LogError(err, "attendance notification dispatch failed")
	}
}

// recomputeMonthlyTotal applies the aggregation rule: only office-confirmed
// entries count, each capped at DailyMinutesCap.
func recomputeMonthlyTotal(record *models.AttendanceRecord) {
	total := 0
	for i := range record.Entries {
		entry := &record.Entries[i]
		if entry.ConfirmationStatus != models.ConfirmationConfirmed {
			continue
		}
		minutes := entry.TotalMinutes
		if minutes > models.DailyMinutesCap {
			minutes = models.DailyMinutesCap
		}
		total += minutes
	}
	record.TotalMonthlyMinutes = total
}

// computeEntryTotal sums max(0, out-in) across all shift pairs, counting a
// pair only when both sides are present and out is strictly after in.
func computeEntryTotal(entry *models.DayEntry) int {
	total := 0
	for _, pair := range entry.ShiftPairs {
		if pair.In == "" || pair.Out == "" {
			continue
		}
		in := scheduling.MinutesOfDay(scheduling.CanonicalTime(pair.In))
		out := scheduling.MinutesOfDay(scheduling.CanonicalTime(pair.Out))
		if out > in {
			total += out - in
		}
	}
	return total
}

// Tracked field names recorded in the office edit history.
const (
	fieldTimeInAM  = "time_in_am"
	fieldTimeOutAM = "time_out_am"
	fieldTimeInPM  = "time_in_pm"
	fieldTimeOutPM = "time_out_pm"
	fieldStatus    = "status"
)

// trackedFields snapshots the diffable fields of an entry.
func trackedFields(entry *models.DayEntry) map[string]string {
	snapshot := map[string]string{
		fieldTimeInAM:  "",
		fieldTimeOutAM: "",
		fieldTimeInPM:  "",
		fieldTimeOutPM: "",
		fieldStatus:    entry.Status,
	}
	if len(entry.ShiftPairs) > 0 {
		snapshot[fieldTimeInAM] = entry.ShiftPairs[0].In
		snapshot[fieldTimeOutAM] = entry.ShiftPairs[0].Out
	}
	if len(entry.ShiftPairs) > 1 {
		snapshot[fieldTimeInPM] = entry.ShiftPairs[1].In
		snapshot[fieldTimeOutPM] = entry.ShiftPairs[1].Out
	}
	return snapshot
}

// ensureLegacyPairs grows the pair list so the AM/PM slots exist.
func ensureLegacyPairs(entry *models.DayEntry) {
	for len(entry.ShiftPairs) < 2 {
		entry.ShiftPairs = append(entry.ShiftPairs, models.ShiftPair{})
	}
}

// canonicalOrEmpty canonicalizes a supplied time, keeping "" as a clear.
func canonicalOrEmpty(raw string) string {
	if raw == "" {
		return ""
	}
	return scheduling.CanonicalTime(raw)
}

// mergeEntryFields applies the partial edit to the entry: nil fields are
// left alone, supplied fields overwrite (empty string clears a time).
func mergeEntryFields(entry *models.DayEntry, timeInAM, timeOutAM, timeInPM, timeOutPM *string, extra []ShiftPairInput, status *string) {
	ensureLegacyPairs(entry)
	if timeInAM != nil {
		entry.ShiftPairs[0].In = canonicalOrEmpty(*timeInAM)
	}
	if timeOutAM != nil {
		entry.ShiftPairs[0].Out = canonicalOrEmpty(*timeOutAM)
	}
	if timeInPM != nil {
		entry.ShiftPairs[1].In = canonicalOrEmpty(*timeInPM)
	}
	if timeOutPM != nil {
		entry.ShiftPairs[1].Out = canonicalOrEmpty(*timeOutPM)
	}
	if extra != nil {
		dynamic := make([]models.ShiftPair, 0, len(extra))
		for _, pair := range extra {
			var p models.ShiftPair
			if pair.In != nil {
				p.In = canonicalOrEmpty(*pair.In)
			}
			if pair.Out != nil {
				p.Out = canonicalOrEmpty(*pair.Out)
			}
			dynamic = append(dynamic, p)
		}
		entry.ShiftPairs = append(entry.ShiftPairs[:2], dynamic...)
	}
	if status != nil {
		entry.Status = *status
	}
}

// refreshDerivedMinutes recomputes the entry's total and, when the owner's
// schedule can be resolved, its late/undertime against the schedule map.
func (s *attendanceService) refreshDerivedMinutes(record *models.AttendanceRecord, entry *models.DayEntry) error {
	if entry.ExcusedStatus == models.ExcusedStatusExcused {
		entry.TotalMinutes = 0
		return nil
	}
	entry.TotalMinutes = computeEntryTotal(entry)

	scheduleMap, err := s.buildScheduleMap(record.PersonID)
	if err != nil {
		return err
	}
	date := time.Date(record.Year, time.Month(record.Month), entry.Day, 0, 0, 0, 0, time.UTC)
	result := scheduling.Reconcile(date, entry.ShiftPairs, scheduleMap)
	entry.LateMinutes = result.LateMinutes
	entry.UndertimeMinutes = result.UndertimeMinutes
	return nil
}

func (s *attendanceService) buildScheduleMap(profileID int64) (scheduling.ScheduleMap, error) {
	classEntries, err := s.scholarRepo.GetClassScheduleEntries(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load class schedule for profile %d: %w", profileID, err)
	}
	dutyWindows, err := s.scholarRepo.GetDutyWindows(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load duty windows for profile %d: %w", profileID, err)
	}
	return scheduling.BuildScheduleMap(classEntries, dutyWindows), nil
}

// EditEntry is the person-side edit: any change invalidates a prior office
// confirmation, so the entry is unconditionally reset to unconfirmed.
func (s *attendanceService) EditEntry(recordID int64, day int, req EditEntryRequest) (*models.AttendanceRecord, error) {
	record, entry, err := s.loadEditableEntry(recordID, day)
	if err != nil {
		return nil, err
	}

	mergeEntryFields(entry, req.TimeInAM, req.TimeOutAM, req.TimeInPM, req.TimeOutPM, req.ExtraShifts, req.Status)
	if err := s.refreshDerivedMinutes(record, entry); err != nil {
		return nil, err
	}

	entry.ConfirmationStatus = models.ConfirmationUnconfirmed
	entry.ConfirmedBy = nil
	entry.ConfirmedAt = nil

	return s.saveRecord(record)
}

// EditEntryAsOffice merges the supplied fields, appends one edit-history
// item listing the tracked fields that actually changed, and may set
// confirmation directly.
func (s *attendanceService) EditEntryAsOffice(recordID int64, day int, req OfficeEditEntryRequest, actor Actor) (*models.AttendanceRecord, error) {
	if req.ConfirmationStatus != nil && !isValidConfirmation(*req.ConfirmationStatus) {
		return nil, fmt.Errorf("%w: unknown confirmation status %q", ErrAttendanceValidation, *req.ConfirmationStatus)
	}

	record, entry, err := s.loadEditableEntry(recordID, day)
	if err != nil {
		return nil, err
	}

	before := trackedFields(entry)
	mergeEntryFields(entry, req.TimeInAM, req.TimeOutAM, req.TimeInPM, req.TimeOutPM, req.ExtraShifts, req.Status)
	if err := s.refreshDerivedMinutes(record, entry); err != nil {
		return nil, err
	}

	after := trackedFields(entry)
	var changes []models.FieldChange
	for _, field := range []string{fieldTimeInAM, fieldTimeOutAM, fieldTimeInPM, fieldTimeOutPM, fieldStatus} {
		if before[field] != after[field] {
			changes = append(changes, models.FieldChange{Field: field, Before: before[field], After: after[field]})
		}
	}
	if len(changes) > 0 {
		entry.EditHistory = append(entry.EditHistory, models.EntryEdit{
			ActorID:   actor.ID,
			ActorName: actor.Name,
			Timestamp: time.Now(),
			Changes:   changes,
		})
	}

	if req.ConfirmationStatus != nil {
		applyConfirmation(entry, *req.ConfirmationStatus, actor)
	}

	return s.saveRecord(record)
}

func isValidConfirmation(status string) bool {
	return status == models.ConfirmationConfirmed || status == models.ConfirmationUnconfirmed
}

// applyConfirmation sets or clears the confirmation with audit stamps.
func applyConfirmation(entry *models.DayEntry, status string, actor Actor) {
	if status == models.ConfirmationConfirmed {
		now := time.Now()
		name := actor.Name
		entry.ConfirmationStatus = models.ConfirmationConfirmed
		entry.ConfirmedBy = &name
		entry.ConfirmedAt = &now
		return
	}
	entry.ConfirmationStatus = models.ConfirmationUnconfirmed
	entry.ConfirmedBy = nil
	entry.ConfirmedAt = nil
}

func (s *attendanceService) ConfirmEntry(recordID int64, day int, actor Actor) (*models.AttendanceRecord, error) {
	record, entry, err := s.loadEditableEntry(recordID, day)
	if err != nil {
		return nil, err
	}
	applyConfirmation(entry, models.ConfirmationConfirmed, actor)
	saved, err := s.saveRecord(record)
	if err != nil {
		return nil, err
	}
	s.notify(NotificationEvent{Type: EventEntryConfirmed, PersonID: record.PersonID, RecordID: record.ID, Day: day, ActorName: actor.Name})
	return saved, nil
}

func (s *attendanceService) UnconfirmEntry(recordID int64, day int, actor Actor) (*models.AttendanceRecord, error) {
	record, entry, err := s.loadEditableEntry(recordID, day)
	if err != nil {
		return nil, err
	}
	applyConfirmation(entry, models.ConfirmationUnconfirmed, actor)
	saved, err := s.saveRecord(record)
	if err != nil {
		return nil, err
	}
	s.notify(NotificationEvent{Type: EventEntryUnconfirmed, PersonID: record.PersonID, RecordID: record.ID, Day: day, ActorName: actor.Name})
	return saved, nil
}

// ConfirmAllEntries force-confirms every entry that has at least one
// recorded time in its legacy AM/PM slots. A bulk review convenience.
func (s *attendanceService) ConfirmAllEntries(recordID int64, actor Actor) (*models.AttendanceRecord, error) {
	record, err := s.GetRecordByID(recordID)
	if err != nil {
		return nil, err
	}
	if record.Status == models.RecordStatusApproved || record.Status == models.RecordStatusRejected {
		return nil, fmt.Errorf("%w: record status is %s", ErrRecordImmutable, record.Status)
	}

	for i := range record.Entries {
		entry := &record.Entries[i]
		if !hasLegacyTimes(entry) {
			continue
		}
		applyConfirmation(entry, models.ConfirmationConfirmed, actor)
	}
	saved, err := s.saveRecord(record)
	if err != nil {
		return nil, err
	}
	s.notify(NotificationEvent{Type: EventRecordConfirmAll, PersonID: record.PersonID, RecordID: record.ID, ActorName: actor.Name})
	return saved, nil
}

func hasLegacyTimes(entry *models.DayEntry) bool {
	for i, pair := range entry.ShiftPairs {
		if i >= 2 {
			break
		}
		if !pair.IsEmpty() {
			return true
		}
	}
	return false
}

// MarkExcused sets or clears the excused exception state. An excused day is
// auto-confirmed with zero minutes; it contributes zero (not skipped) to the
// monthly total.
func (s *attendanceService) MarkExcused(recordID int64, day int, req MarkExcusedRequest, actor Actor) (*models.AttendanceRecord, error) {
	if req.ConfirmationStatus != nil && !isValidConfirmation(*req.ConfirmationStatus) {
		return nil, fmt.Errorf("%w: unknown confirmation status %q", ErrAttendanceValidation, *req.ConfirmationStatus)
	}

	record, entry, err := s.loadEditableEntry(recordID, day)
	if err != nil {
		return nil, err
	}

	if req.Excused {
		entry.ExcusedStatus = models.ExcusedStatusExcused
		entry.ExcusedReason = req.Reason
		entry.TotalMinutes = 0
		entry.Status = models.DayStatusExcused
		applyConfirmation(entry, models.ConfirmationConfirmed, actor)
	} else {
		entry.ExcusedStatus = models.ExcusedStatusNone
		entry.ExcusedReason = nil
		if entry.Status == models.DayStatusExcused {
			entry.Status = ""
		}
		if req.ConfirmationStatus != nil {
			applyConfirmation(entry, *req.ConfirmationStatus, actor)
		} else {
			entry.TotalMinutes = computeEntryTotal(entry)
		}
	}

	saved, err := s.saveRecord(record)
	if err != nil {
		return nil, err
	}
	s.notify(NotificationEvent{Type: EventEntryExcused, PersonID: record.PersonID, RecordID: record.ID, Day: day, ActorName: actor.Name})
	return saved, nil
}

// MarkAbsent sets or clears the absent exception state. Marking absent
// wipes the day's recorded times and auto-confirms the zeroed entry.
func (s *attendanceService) MarkAbsent(recordID int64, day int, req MarkAbsentRequest, actor Actor) (*models.AttendanceRecord, error) {
	if req.ConfirmationStatus != nil && !isValidConfirmation(*req.ConfirmationStatus) {
		return nil, fmt.Errorf("%w: unknown confirmation status %q", ErrAttendanceValidation, *req.ConfirmationStatus)
	}

	record, entry, err := s.loadEditableEntry(recordID, day)
	if err != nil {
		return nil, err
	}

	if req.Absent {
		entry.ShiftPairs = []models.ShiftPair{{}, {}}
		entry.LateMinutes = 0
		entry.UndertimeMinutes = 0
		entry.TotalMinutes = 0
		entry.Status = models.DayStatusAbsent
		applyConfirmation(entry, models.ConfirmationConfirmed, actor)
	} else {
		if entry.Status == models.DayStatusAbsent {
			entry.Status = ""
		}
		if req.ConfirmationStatus != nil {
			applyConfirmation(entry, *req.ConfirmationStatus, actor)
		}
	}

	saved, err := s.saveRecord(record)
	if err != nil {
		return nil, err
	}
	s.notify(NotificationEvent{Type: EventEntryAbsent, PersonID: record.PersonID, RecordID: record.ID, Day: day, ActorName: actor.Name})
	return saved, nil
}

// SubmitRecord moves a draft record into review.
func (s *attendanceService) SubmitRecord(recordID int64, actor Actor) (*models.AttendanceRecord, error) {
	record, err := s.GetRecordByID(recordID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.RecordStatusDraft {
		return nil, fmt.Errorf("%w: cannot submit from status %s", ErrRecordStatusTransition, record.Status)
	}
	record.Status = models.RecordStatusSubmitted
	saved, err := s.saveRecord(record)
	if err != nil {
		return nil, err
	}
	s.notify(NotificationEvent{Type: EventRecordSubmitted, PersonID: record.PersonID, RecordID: record.ID, ActorName: actor.Name})
	return saved, nil
}

// ApproveRecord finalizes a submitted record; entries become immutable.
func (s *attendanceService) ApproveRecord(recordID int64, actor Actor) (*models.AttendanceRecord, error) {
	record, err := s.GetRecordByID(recordID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.RecordStatusSubmitted {
		return nil, fmt.Errorf("%w: cannot approve from status %s", ErrRecordStatusTransition, record.Status)
	}
	record.Status = models.RecordStatusApproved
	saved, err := s.saveRecord(record)
	if err != nil {
		return nil, err
	}
	s.notify(NotificationEvent{Type: EventRecordApproved, PersonID: record.PersonID, RecordID: record.ID, ActorName: actor.Name})
	return saved, nil
}

// RejectRecord finalizes a submitted record as rejected, with remarks.
func (s *attendanceService) RejectRecord(recordID int64, remarks string, actor Actor) (*models.AttendanceRecord, error) {
	record, err := s.GetRecordByID(recordID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.RecordStatusSubmitted {
		return nil, fmt.Errorf("%w: cannot reject from status %s", ErrRecordStatusTransition, record.Status)
	}
	record.Status = models.RecordStatusRejected
	if remarks != "" {
		record.Remarks = &remarks
	}
	saved, err := s.saveRecord(record)
	if err != nil {
		return nil, err
	}
	s.notify(NotificationEvent{Type: EventRecordRejected, PersonID: record.PersonID, RecordID: record.ID, ActorName: actor.Name, Detail: remarks})
	return saved, nil
}

// ReconcileEntry computes the day's lateness/undertime against the owner's
// current schedule without mutating the record.
func (s *attendanceService) ReconcileEntry(recordID int64, day int) (*scheduling.ReconcileResult, error) {
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("%w: day must be within 1..31", ErrAttendanceValidation)
	}
	record, err := s.GetRecordByID(recordID)
	if err != nil {
		return nil, err
	}
	entry := record.EntryForDay(day)
	if entry == nil {
		return nil, fmt.Errorf("%w: day %d of %d/%d", ErrEntryNotFound, day, record.Month, record.Year)
	}
	scheduleMap, err := s.buildScheduleMap(record.PersonID)
	if err != nil {
		return nil, err
	}
	date := time.Date(record.Year, time.Month(record.Month), entry.Day, 0, 0, 0, 0, time.UTC)
	result := scheduling.Reconcile(date, entry.ShiftPairs, scheduleMap)
	return &result, nil
}
