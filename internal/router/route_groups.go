package router

import (
	"scholartrack_backend/internal/handlers"
	"scholartrack_backend/internal/middleware"
	"scholartrack_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupProfileRoutes sets up the scholar profile routes: profile CRUD,
// class schedules, the derived schedule map, duty-hour windows, and the
// per-profile attendance record listing.
func SetupProfileRoutes(authenticatedGroup *gin.RouterGroup, scholarHandler *handlers.ScholarHandler, attendanceHandler *handlers.AttendanceHandler) {
	profileRoutes := authenticatedGroup.Group("/profiles")
	{
		officeOnly := middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleOffice)

		profileRoutes.POST("", officeOnly, scholarHandler.CreateProfile)
		profileRoutes.GET("", officeOnly, scholarHandler.GetProfiles)
		profileRoutes.GET("/:id", scholarHandler.GetProfileByID)

		profileRoutes.POST("/:id/class-schedule", scholarHandler.AddClassScheduleEntry)
		profileRoutes.DELETE("/:id/class-schedule/:entryId", scholarHandler.RemoveClassScheduleEntry)
		profileRoutes.GET("/:id/schedule-map", scholarHandler.GetWeeklySchedule)

		profileRoutes.GET("/:id/duty-hours", scholarHandler.GetDutyWindows)
		profileRoutes.POST("/:id/duty-hours", officeOnly, scholarHandler.AddDutyWindow)
		profileRoutes.DELETE("/:id/duty-hours", officeOnly, scholarHandler.RemoveDutyWindow)

		profileRoutes.POST("/:id/attendance", attendanceHandler.GetOrCreateRecord)
		profileRoutes.GET("/:id/attendance", attendanceHandler.GetRecordsByProfile)
	}
}

// SetupAttendanceRoutes sets up the attendance record routes: entry edits,
// confirmation, exception marking, the review lifecycle, and reconciliation.
func SetupAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	attendanceRoutes := authenticatedGroup.Group("/attendance")
	{
		officeOnly := middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleOffice)

		attendanceRoutes.GET("/:id", attendanceHandler.GetRecordByID)
		attendanceRoutes.PUT("/:id/entries/:day", attendanceHandler.EditEntry)
		attendanceRoutes.GET("/:id/entries/:day/reconcile", attendanceHandler.ReconcileEntry)
		attendanceRoutes.POST("/:id/submit", attendanceHandler.SubmitRecord)

		attendanceRoutes.PUT("/:id/entries/:day/office", officeOnly, attendanceHandler.EditEntryAsOffice)
		attendanceRoutes.POST("/:id/entries/:day/confirm", officeOnly, attendanceHandler.ConfirmEntry)
		attendanceRoutes.POST("/:id/entries/:day/unconfirm", officeOnly, attendanceHandler.UnconfirmEntry)
		attendanceRoutes.POST("/:id/confirm-all", officeOnly, attendanceHandler.ConfirmAllEntries)
		attendanceRoutes.POST("/:id/entries/:day/excused", officeOnly, attendanceHandler.MarkExcused)
		attendanceRoutes.POST("/:id/entries/:day/absent", officeOnly, attendanceHandler.MarkAbsent)
		attendanceRoutes.POST("/:id/approve", officeOnly, attendanceHandler.ApproveRecord)
		attendanceRoutes.POST("/:id/reject", officeOnly, attendanceHandler.RejectRecord)
	}
}
