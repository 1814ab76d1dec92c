package router

import (
	"database/sql"

	"scholartrack_backend/internal/handlers"
	"scholartrack_backend/internal/middleware"
	"scholartrack_backend/internal/repositories"
	"scholartrack_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	scholarRepo := repositories.NewScholarRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)

	// Initialize Services
	notifier := services.NewLogNotifier()

	authService := services.NewAuthService(authRepo, db)
	scholarService := services.NewScholarService(scholarRepo, authRepo, db)
	dutyHourService := services.NewDutyHourService(scholarRepo, db)
	attendanceService := services.NewAttendanceService(attendanceRepo, scholarRepo, notifier, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	scholarHandler := handlers.NewScholarHandler(scholarService, dutyHourService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, scholarService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupProfileRoutes(authenticated, scholarHandler, attendanceHandler)
		SetupAttendanceRoutes(authenticated, attendanceHandler)
	}
}

func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}
