package services

import (
	"encoding/json"
	"sync"

	"scholartrack_backend/internal/models"
	"scholartrack_backend/internal/repositories"
)

// cloneRecord deep-copies a record through JSON so mock storage never
// shares entry slices with the caller.
func cloneRecord(record *models.AttendanceRecord) *models.AttendanceRecord {
	raw, _ := json.Marshal(record)
	clone := &models.AttendanceRecord{}
	_ = json.Unmarshal(raw, clone)
	return clone
}

// mockAttendanceRepo is an in-memory AttendanceRepository.
type mockAttendanceRepo struct {
	mu      sync.Mutex
	records map[int64]*models.AttendanceRecord
	nextID  int64

	updateErr error // forced error for the next UpdateRecord, if set
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: map[int64]*models.AttendanceRecord{}, nextID: 1}
}

func (m *mockAttendanceRepo) CreateRecord(_ repositories.SQLExecutor, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.records {
		if existing.PersonID == record.PersonID && existing.Month == record.Month && existing.Year == record.Year {
			return nil, repositories.ErrDuplicateKey
		}
	}
	record.ID = m.nextID
	m.nextID++
	record.Version = 1
	m.records[record.ID] = cloneRecord(record)
	return cloneRecord(record), nil
}

func (m *mockAttendanceRepo) GetRecordByID(recordID int64) (*models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[recordID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneRecord(record), nil
}

func (m *mockAttendanceRepo) GetRecordByPersonPeriod(personID int64, month, year int) (*models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.records {
		if record.PersonID == personID && record.Month == month && record.Year == year {
			return cloneRecord(record), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockAttendanceRepo) GetRecordsByPerson(personID int64) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []models.AttendanceRecord
	for _, record := range m.records {
		if record.PersonID == personID {
			records = append(records, *cloneRecord(record))
		}
	}
	return records, nil
}

func (m *mockAttendanceRepo) UpdateRecord(_ repositories.SQLExecutor, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		err := m.updateErr
		m.updateErr = nil
		return nil, err
	}
	stored, ok := m.records[record.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if stored.Version != record.Version {
		return nil, repositories.ErrVersionConflict
	}
	record.Version++
	m.records[record.ID] = cloneRecord(record)
	return cloneRecord(record), nil
}

// mockScholarRepo is an in-memory ScholarRepository.
type mockScholarRepo struct {
	profiles     map[int64]*models.ScholarProfile
	classEntries map[int64][]models.ClassScheduleEntry
	dutyWindows  map[int64][]models.DutyHourWindow
	nextEntryID  int64
	nextWindowID int64
}

func newMockScholarRepo() *mockScholarRepo {
	return &mockScholarRepo{
		profiles:     map[int64]*models.ScholarProfile{},
		classEntries: map[int64][]models.ClassScheduleEntry{},
		dutyWindows:  map[int64][]models.DutyHourWindow{},
		nextEntryID:  1,
		nextWindowID: 1,
	}
}

func (m *mockScholarRepo) addProfile(profileID, userID int64) {
	m.profiles[profileID] = &models.ScholarProfile{ID: profileID, UserID: userID, Kind: models.ProfileKindScholar}
}

func (m *mockScholarRepo) CreateProfile(_ repositories.SQLExecutor, profile *models.ScholarProfile) (*models.ScholarProfile, error) {
	for _, existing := range m.profiles {
		if existing.UserID == profile.UserID {
			return nil, repositories.ErrDuplicateKey
		}
	}
	profile.ID = int64(len(m.profiles) + 1)
	m.profiles[profile.ID] = profile
	return profile, nil
}

func (m *mockScholarRepo) GetProfileByID(profileID int64) (*models.ScholarProfile, error) {
	profile, ok := m.profiles[profileID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return profile, nil
}

func (m *mockScholarRepo) GetProfileByUserID(userID int64) (*models.ScholarProfile, error) {
	for _, profile := range m.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockScholarRepo) GetProfiles(page, pageSize int) ([]models.ScholarProfile, int, error) {
	var profiles []models.ScholarProfile
	for _, profile := range m.profiles {
		profiles = append(profiles, *profile)
	}
	return profiles, len(profiles), nil
}

func (m *mockScholarRepo) CreateClassScheduleEntry(_ repositories.SQLExecutor, entry *models.ClassScheduleEntry) (*models.ClassScheduleEntry, error) {
	entry.ID = m.nextEntryID
	m.nextEntryID++
	m.classEntries[entry.ProfileID] = append(m.classEntries[entry.ProfileID], *entry)
	return entry, nil
}

func (m *mockScholarRepo) DeleteClassScheduleEntry(_ repositories.SQLExecutor, profileID, entryID int64) error {
	entries := m.classEntries[profileID]
	for i, entry := range entries {
		if entry.ID == entryID {
			m.classEntries[profileID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockScholarRepo) GetClassScheduleEntries(profileID int64) ([]models.ClassScheduleEntry, error) {
	return m.classEntries[profileID], nil
}

func (m *mockScholarRepo) CreateDutyWindow(_ repositories.SQLExecutor, window *models.DutyHourWindow) (*models.DutyHourWindow, error) {
	window.ID = m.nextWindowID
	m.nextWindowID++
	m.dutyWindows[window.ProfileID] = append(m.dutyWindows[window.ProfileID], *window)
	return window, nil
}

func (m *mockScholarRepo) DeleteDutyWindow(_ repositories.SQLExecutor, profileID int64, day, startTime, endTime string) error {
	windows := m.dutyWindows[profileID]
	for i, window := range windows {
		if window.Day == day && window.StartTime == startTime && window.EndTime == endTime {
			m.dutyWindows[profileID] = append(windows[:i], windows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockScholarRepo) GetDutyWindows(profileID int64) ([]models.DutyHourWindow, error) {
	return m.dutyWindows[profileID], nil
}

// mockAuthRepo is an in-memory AuthRepository.
type mockAuthRepo struct {
	users  map[int64]*models.User
	roles  map[string]*models.Role
	nextID int64
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[int64]*models.User{}, roles: map[string]*models.Role{}, nextID: 1}
}

func (m *mockAuthRepo) addUser(userID int64, username string) {
	m.users[userID] = &models.User{ID: userID, Username: username, IsActive: true}
}

func (m *mockAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return 0, repositories.ErrDuplicateKey
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.IsActive = true
	user.PasswordHash = hashedPassword
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *mockAuthRepo) FindUserByUsername(username string) (*models.User, string, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, user.PasswordHash, nil
		}
	}
	return nil, "", repositories.ErrNotFound
}

func (m *mockAuthRepo) FindUserByID(userID int64) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *mockAuthRepo) FindRoleByName(name string) (*models.Role, error) {
	role, ok := m.roles[name]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return role, nil
}

// mockNotifier records dispatched events.
type mockNotifier struct {
	events []NotificationEvent
	err    error
}

func (m *mockNotifier) Notify(event NotificationEvent) error {
	m.events = append(m.events, event)
	return m.err
}
