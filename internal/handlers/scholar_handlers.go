package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"scholartrack_backend/internal/services"
	"scholartrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ScholarHandler holds the scholar-profile and duty-hour services.
type ScholarHandler struct {
	scholarService  services.ScholarService
	dutyHourService services.DutyHourService
}

// NewScholarHandler creates a new ScholarHandler.
func NewScholarHandler(ss services.ScholarService, ds services.DutyHourService) *ScholarHandler {
	return &ScholarHandler{scholarService: ss, dutyHourService: ds}
}

// CreateProfile handles creation of a scholar/trainee profile.
func (h *ScholarHandler) CreateProfile(c *gin.Context) {
	var req services.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateProfile: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	profile, err := h.scholarService.CreateProfile(req)
	if err != nil {
		utils.LogError(err, "CreateProfile: Error from scholarService.CreateProfile")
		if errors.Is(err, services.ErrProfileExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrProfileValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrProfileUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetProfiles handles listing profiles with pagination.
func (h *ScholarHandler) GetProfiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	profiles, totalCount, err := h.scholarService.GetProfiles(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetProfiles: Error from scholarService.GetProfiles")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch profiles.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  profiles,
		"total": totalCount,
		"page":  page,
	})
}

// GetProfileByID handles fetching a single profile.
func (h *ScholarHandler) GetProfileByID(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := h.scholarService.GetProfileByID(profileID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found.", err.Error()))
		} else {
			utils.LogError(err, "GetProfileByID: Error from scholarService.GetProfileByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AddClassScheduleEntry handles attaching an uploaded subject schedule.
func (h *ScholarHandler) AddClassScheduleEntry(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.AddClassScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	entry, err := h.scholarService.AddClassScheduleEntry(profileID, req)
	if err != nil {
		utils.LogError(err, "AddClassScheduleEntry: Error from scholarService.AddClassScheduleEntry")
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found.", err.Error()))
		} else if errors.Is(err, services.ErrScheduleEntryInvalid) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to add class schedule entry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// RemoveClassScheduleEntry handles deleting a class schedule entry.
func (h *ScholarHandler) RemoveClassScheduleEntry(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	if err := h.scholarService.RemoveClassScheduleEntry(profileID, entryID); err != nil {
		if errors.Is(err, services.ErrScheduleEntryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Class schedule entry not found.", err.Error()))
		} else {
			utils.LogError(err, "RemoveClassScheduleEntry: Error from scholarService.RemoveClassScheduleEntry")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to remove class schedule entry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class schedule entry removed."})
}

// GetWeeklySchedule handles rendering the derived schedule map.
func (h *ScholarHandler) GetWeeklySchedule(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	week, err := h.scholarService.GetWeeklySchedule(profileID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found.", err.Error()))
		} else {
			utils.LogError(err, "GetWeeklySchedule: Error from scholarService.GetWeeklySchedule")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build weekly schedule.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": week})
}

// AddDutyWindow handles the conflict-checked assignment of a duty window.
func (h *ScholarHandler) AddDutyWindow(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req services.AddDutyWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	window, err := h.dutyHourService.AddDutyWindow(profileID, req, actor)
	if err != nil {
		utils.LogError(err, "AddDutyWindow: Error from dutyHourService.AddDutyWindow")
		if errors.Is(err, services.ErrDutyWindowOverlap) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrDutyWindowValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrProfileNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to add duty window.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, window)
}

// RemoveDutyWindow handles removal of a duty window by exact match.
func (h *ScholarHandler) RemoveDutyWindow(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req services.RemoveDutyWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.dutyHourService.RemoveDutyWindow(profileID, req, actor); err != nil {
		utils.LogError(err, "RemoveDutyWindow: Error from dutyHourService.RemoveDutyWindow")
		if errors.Is(err, services.ErrDutyWindowNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Duty window not found.", err.Error()))
		} else if errors.Is(err, services.ErrDutyWindowValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to remove duty window.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Duty window removed."})
}

// GetDutyWindows handles listing a profile's duty windows.
func (h *ScholarHandler) GetDutyWindows(c *gin.Context) {
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	windows, err := h.dutyHourService.GetDutyWindows(profileID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found.", err.Error()))
		} else {
			utils.LogError(err, "GetDutyWindows: Error from dutyHourService.GetDutyWindows")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch duty windows.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": windows})
}
