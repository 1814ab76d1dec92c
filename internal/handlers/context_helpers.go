package handlers

import (
	"net/http"

	"scholartrack_backend/internal/models"
	"scholartrack_backend/internal/services"
	"scholartrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// currentActor assembles the acting identity from the values the auth
// middleware placed in the request context. The second return value is
// false when the request is not properly authenticated; an error response
// has already been written in that case.
func currentActor(c *gin.Context) (services.Actor, bool) {
	userIDRaw, exists := c.Get("userID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return services.Actor{}, false
	}
	userID, ok := userIDRaw.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User ID format incorrect.", "Invalid user ID format in context"))
		return services.Actor{}, false
	}
	username, _ := c.Get("username")
	usernameStr, _ := username.(string)
	role, _ := c.Get("userRole")
	roleStr, _ := role.(string)

	return services.Actor{ID: userID, Name: usernameStr, Role: roleStr}, true
}

// isOfficeRole reports whether the actor may perform office operations.
func isOfficeRole(actor services.Actor) bool {
	return actor.Role == models.RoleOffice || actor.Role == models.RoleAdmin
}

// pathID parses a positive int64 path parameter, responding with a
// validation error when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" path parameter.", c.Param(name)))
		return 0, false
	}
	return id, true
}
