package handlers

import (
	"errors"
	"net/http"

	"scholartrack_backend/internal/models"
	"scholartrack_backend/internal/services"
	"scholartrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler holds the attendance and scholar services.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
	scholarService    services.ScholarService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService, ss services.ScholarService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as, scholarService: ss}
}

// respondAttendanceError maps attendance service errors onto the API
// error envelope.
func respondAttendanceError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrRecordNotFound), errors.Is(err, services.ErrEntryNotFound), errors.Is(err, services.ErrProfileNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), err.Error()))
	case errors.Is(err, services.ErrRecordImmutable):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeImmutableState, err.Error(), err.Error()))
	case errors.Is(err, services.ErrRecordStatusTransition), errors.Is(err, services.ErrRecordConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
	case errors.Is(err, services.ErrAttendanceValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Attendance operation failed.", "Internal error"))
	}
}

// authorizeProfileAccess lets office users through and restricts scholars
// to their own profile. The second return value is false when a response
// has already been written.
func (h *AttendanceHandler) authorizeProfileAccess(c *gin.Context, actor services.Actor, profileID int64) bool {
	if isOfficeRole(actor) {
		return true
	}
	profile, err := h.scholarService.GetProfileByUserID(actor.ID)
	if err != nil || profile.ID != profileID {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You may only access your own attendance data.", "Profile ownership check failed"))
		return false
	}
	return true
}

// authorizeRecordAccess resolves the record and applies the same ownership
// rule against the record's owning profile.
func (h *AttendanceHandler) authorizeRecordAccess(c *gin.Context, actor services.Actor, recordID int64) (*models.AttendanceRecord, bool) {
	record, err := h.attendanceService.GetRecordByID(recordID)
	if err != nil {
		respondAttendanceError(c, err, "authorizeRecordAccess: Error from attendanceService.GetRecordByID")
		return nil, false
	}
	if !h.authorizeProfileAccess(c, actor, record.PersonID) {
		return nil, false
	}
	return record, true
}

// GetOrCreateRecordRequest selects the period of the record to open.
type GetOrCreateRecordRequest struct {
	Month int `json:"month" binding:"required"`
	Year  int `json:"year" binding:"required"`
}

// GetOrCreateRecord opens the profile's record for a month, creating an
// empty one on first access.
func (h *AttendanceHandler) GetOrCreateRecord(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if !h.authorizeProfileAccess(c, actor, profileID) {
		return
	}
	var req GetOrCreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.attendanceService.GetOrCreateRecord(profileID, req.Month, req.Year)
	if err != nil {
		respondAttendanceError(c, err, "GetOrCreateRecord: Error from attendanceService.GetOrCreateRecord")
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetRecordsByProfile lists the profile's attendance records.
func (h *AttendanceHandler) GetRecordsByProfile(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if !h.authorizeProfileAccess(c, actor, profileID) {
		return
	}

	records, err := h.attendanceService.GetRecordsByProfile(profileID)
	if err != nil {
		respondAttendanceError(c, err, "GetRecordsByProfile: Error from attendanceService.GetRecordsByProfile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

// GetRecordByID fetches one attendance record.
func (h *AttendanceHandler) GetRecordByID(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	record, ok := h.authorizeRecordAccess(c, actor, recordID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, record)
}

// dayParam parses the :day path parameter.
func dayParam(c *gin.Context) (int, bool) {
	day, ok := pathID(c, "day")
	if !ok {
		return 0, false
	}
	return int(day), true
}

// EditEntry applies a person-side edit to one day entry. Any change resets
// the entry's office confirmation.
func (h *AttendanceHandler) EditEntry(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if _, ok := h.authorizeRecordAccess(c, actor, recordID); !ok {
		return
	}
	var req services.EditEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.attendanceService.EditEntry(recordID, day, req)
	if err != nil {
		respondAttendanceError(c, err, "EditEntry: Error from attendanceService.EditEntry")
		return
	}
	c.JSON(http.StatusOK, record)
}

// EditEntryAsOffice applies an office-side edit with edit-history tracking.
func (h *AttendanceHandler) EditEntryAsOffice(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req services.OfficeEditEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.attendanceService.EditEntryAsOffice(recordID, day, req, actor)
	if err != nil {
		respondAttendanceError(c, err, "EditEntryAsOffice: Error from attendanceService.EditEntryAsOffice")
		return
	}
	c.JSON(http.StatusOK, record)
}

// ConfirmEntry marks one day entry office-confirmed.
func (h *AttendanceHandler) ConfirmEntry(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.ConfirmEntry(recordID, day, actor)
	if err != nil {
		respondAttendanceError(c, err, "ConfirmEntry: Error from attendanceService.ConfirmEntry")
		return
	}
	c.JSON(http.StatusOK, record)
}

// UnconfirmEntry clears the office confirmation of one day entry.
func (h *AttendanceHandler) UnconfirmEntry(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.UnconfirmEntry(recordID, day, actor)
	if err != nil {
		respondAttendanceError(c, err, "UnconfirmEntry: Error from attendanceService.UnconfirmEntry")
		return
	}
	c.JSON(http.StatusOK, record)
}

// ConfirmAllEntries confirms every day entry that has recorded times.
func (h *AttendanceHandler) ConfirmAllEntries(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.ConfirmAllEntries(recordID, actor)
	if err != nil {
		respondAttendanceError(c, err, "ConfirmAllEntries: Error from attendanceService.ConfirmAllEntries")
		return
	}
	c.JSON(http.StatusOK, record)
}

// MarkExcused sets or clears the excused exception on one day entry.
func (h *AttendanceHandler) MarkExcused(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req services.MarkExcusedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.attendanceService.MarkExcused(recordID, day, req, actor)
	if err != nil {
		respondAttendanceError(c, err, "MarkExcused: Error from attendanceService.MarkExcused")
		return
	}
	c.JSON(http.StatusOK, record)
}

// MarkAbsent sets or clears the absent exception on one day entry.
func (h *AttendanceHandler) MarkAbsent(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req services.MarkAbsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.attendanceService.MarkAbsent(recordID, day, req, actor)
	if err != nil {
		respondAttendanceError(c, err, "MarkAbsent: Error from attendanceService.MarkAbsent")
		return
	}
	c.JSON(http.StatusOK, record)
}

// SubmitRecord moves the record from draft into review.
func (h *AttendanceHandler) SubmitRecord(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if _, ok := h.authorizeRecordAccess(c, actor, recordID); !ok {
		return
	}

	record, err := h.attendanceService.SubmitRecord(recordID, actor)
	if err != nil {
		respondAttendanceError(c, err, "SubmitRecord: Error from attendanceService.SubmitRecord")
		return
	}
	c.JSON(http.StatusOK, record)
}

// ApproveRecord finalizes a submitted record as approved.
func (h *AttendanceHandler) ApproveRecord(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.ApproveRecord(recordID, actor)
	if err != nil {
		respondAttendanceError(c, err, "ApproveRecord: Error from attendanceService.ApproveRecord")
		return
	}
	c.JSON(http.StatusOK, record)
}

// RejectRecordRequest carries the reviewer's remarks.
type RejectRecordRequest struct {
	Remarks string `json:"remarks"`
}

// RejectRecord finalizes a submitted record as rejected.
func (h *AttendanceHandler) RejectRecord(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req RejectRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.attendanceService.RejectRecord(recordID, req.Remarks, actor)
	if err != nil {
		respondAttendanceError(c, err, "RejectRecord: Error from attendanceService.RejectRecord")
		return
	}
	c.JSON(http.StatusOK, record)
}

// ReconcileEntry computes lateness and undertime for one day against the
// owner's current schedule, without persisting anything.
func (h *AttendanceHandler) ReconcileEntry(c *gin.Context) {
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if _, ok := h.authorizeRecordAccess(c, actor, recordID); !ok {
		return
	}

	result, err := h.attendanceService.ReconcileEntry(recordID, day)
	if err != nil {
		respondAttendanceError(c, err, "ReconcileEntry: Error from attendanceService.ReconcileEntry")
		return
	}
	c.JSON(http.StatusOK, result)
}
