package api

import (
	"net/http"

	"hbnb/internal/domain"
	"hbnb/internal/facade"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateUserRequest is the admin payload for creating any account
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	IsAdmin   bool   `json:"is_admin"`
}

// CreateUserHandler lets an admin create a user, optionally with the admin flag
func CreateUserHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		user, err := f.CreateUser(c.Request.Context(), domain.UserParams{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
			IsAdmin:   req.IsAdmin,
		})
		if err != nil {
			respondError(c, err, "Failed to create user")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"is_admin": user.IsAdmin,
		}).Info("User created by admin")
		c.JSON(http.StatusCreated, user)
	}
}

func GetUsersHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := f.GetAllUsers(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch users")
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func GetUserHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := f.GetUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to fetch user")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUserHandler updates a user; ownership and admin rules live in the facade
func UpdateUserHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in facade.UserUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		user, err := f.UpdateUser(c.Request.Context(), actor, c.Param("id"), in)
		if err != nil {
			respondError(c, err, "Failed to update this user")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
