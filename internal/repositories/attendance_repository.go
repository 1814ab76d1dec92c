package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scholartrack_backend/internal/models"
)

// AttendanceRepository defines the interface for attendance-record ("DTR")
// database operations. Day entries travel inside the record as one JSONB
// document; the (person_id, month, year) pair is guarded by a unique
// constraint, and updates carry an optimistic version check.
type AttendanceRepository interface {
	CreateRecord(executor SQLExecutor, record *models.AttendanceRecord) (*models.AttendanceRecord, error)
	GetRecordByID(recordID int64) (*models.AttendanceRecord, error)
	GetRecordByPersonPeriod(personID int64, month, year int) (*models.AttendanceRecord, error)
	GetRecordsByPerson(personID int64) ([]models.AttendanceRecord, error)
	UpdateRecord(executor SQLExecutor, record *models.AttendanceRecord) (*models.AttendanceRecord, error)
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, person_id, month, year, status, total_monthly_minutes, entries, remarks, version, created_at, updated_at`

// scanRecordRow scans one attendance record row, unmarshalling the entries document.
func scanRecordRow(row scanner) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	var entriesJSON []byte
	err := row.Scan(
		&record.ID, &record.PersonID, &record.Month, &record.Year, &record.Status,
		&record.TotalMonthlyMinutes, &entriesJSON, &record.Remarks, &record.Version,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning attendance record: %v", ErrDatabaseError, err)
	}
	if len(entriesJSON) > 0 {
		if err := json.Unmarshal(entriesJSON, &record.Entries); err != nil {
			return nil, fmt.Errorf("%w: decoding entries document for record %d: %v", ErrDatabaseError, record.ID, err)
		}
	}
	return record, nil
}

func (r *attendanceRepository) CreateRecord(executor SQLExecutor, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	entriesJSON, err := json.Marshal(record.Entries)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding entries document: %v", ErrDatabaseError, err)
	}

	query := `INSERT INTO attendance_records
	            (person_id, month, year, status, total_monthly_minutes, entries, remarks, version, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, version, created_at, updated_at`

	currentTime := time.Now()
	err = executor.QueryRow(query,
		record.PersonID, record.Month, record.Year, record.Status,
		record.TotalMonthlyMinutes, entriesJSON, record.Remarks, 1,
		currentTime, currentTime,
	).Scan(&record.ID, &record.Version, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		// One record per person per (month, year).
		if IsUniqueViolation(err, "attendance_records_person_period_key") {
			return nil, fmt.Errorf("%w: attendance record already exists for person %d period %d/%d",
				ErrDuplicateKey, record.PersonID, record.Month, record.Year)
		}
		return nil, fmt.Errorf("%w: creating attendance record: %v", ErrDatabaseError, err)
	}
	return record, nil
}

func (r *attendanceRepository) GetRecordByID(recordID int64) (*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`
	return scanRecordRow(r.db.QueryRow(query, recordID))
}

func (r *attendanceRepository) GetRecordByPersonPeriod(personID int64, month, year int) (*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records
	          WHERE person_id = $1 AND month = $2 AND year = $3`
	return scanRecordRow(r.db.QueryRow(query, personID, month, year))
}

func (r *attendanceRepository) GetRecordsByPerson(personID int64) ([]models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records
	          WHERE person_id = $1 ORDER BY year DESC, month DESC`
	rows, err := r.db.Query(query, personID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing attendance records: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		record, err := scanRecordRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating attendance records: %v", ErrDatabaseError, err)
	}
	return records, nil
}

// UpdateRecord writes the record back, guarded by its version: the UPDATE
// only matches when the stored version equals the one the caller read.
// A stale version yields ErrVersionConflict so concurrent office/person
// edits cannot silently overwrite one another.
func (r *attendanceRepository) UpdateRecord(executor SQLExecutor, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	entriesJSON, err := json.Marshal(record.Entries)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding entries document: %v", ErrDatabaseError, err)
	}

	query := `UPDATE attendance_records
	          SET status = $1, total_monthly_minutes = $2, entries = $3, remarks = $4,
	              version = version + 1, updated_at = $5
	          WHERE id = $6 AND version = $7
	          RETURNING version, updated_at`

	err = executor.QueryRow(query,
		record.Status, record.TotalMonthlyMinutes, entriesJSON, record.Remarks,
		time.Now(), record.ID, record.Version,
	).Scan(&record.Version, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Distinguish a missing row from a stale version.
			var exists bool
			probeErr := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM attendance_records WHERE id = $1)`, record.ID).Scan(&exists)
			if probeErr == nil && !exists {
				return nil, ErrNotFound
			}
			return nil, ErrVersionConflict
		}
		return nil, fmt.Errorf("%w: updating attendance record %d: %v", ErrDatabaseError, record.ID, err)
	}
	return record, nil
}
