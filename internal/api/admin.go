package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"hbnb/internal/domain"     // Domain models
	"hbnb/internal/facade"     // Business facade
	"hbnb/internal/middleware" // Caller identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID        string `json:"id"`         // User ID
	FirstName string `json:"first_name"` // First name
	LastName  string `json:"last_name"`  // Last name
	Email     string `json:"email"`      // Email
	IsAdmin   bool   `json:"is_admin"`   // Admin flag
}

// ListUsersHandler returns one page of users for admins
func ListUsersHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		users, total, err := f.ListUsers(c.Request.Context(), page, pageSize)
		if err != nil {
			respondError(c, err, "Failed to fetch users")
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := make([]UserAdminResponse, len(users))
		// Map users to response format
		for i, u := range users {
			resp[i] = toUserAdminResponse(u)
		}
		c.JSON(http.StatusOK, gin.H{
			"users":       resp,       // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
		})
	}
}

func toUserAdminResponse(u domain.User) UserAdminResponse {
	return UserAdminResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
	}
}

// AdminUpdatePlaceHandler lets an admin update any place regardless of owner
func AdminUpdatePlaceHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.CurrentActor(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// The admin claim is checked before anything else on this route
		if !actor.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			return
		}
		var in facade.PlaceInput // Bind partial update payload
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		view, err := f.AdminUpdatePlace(c.Request.Context(), actor, c.Param("id"), in)
		if err != nil {
			respondError(c, err, "Failed to update this place")
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id": actor.UserID, // Acting admin
			"place_id": view.ID,      // Updated place
		}).Info("Place updated by admin")
		c.JSON(http.StatusOK, view)
	}
}
