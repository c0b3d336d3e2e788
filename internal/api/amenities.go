package api

import (
	"net/http"

	"hbnb/internal/facade"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateAmenityHandler creates an amenity; admin only
func CreateAmenityHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in facade.AmenityInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		view, err := f.CreateAmenity(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "Failed to create amenity")
			return
		}
		logrus.WithField("amenity_id", view.ID).Info("Amenity created")
		c.JSON(http.StatusCreated, view)
	}
}

func GetAmenitiesHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := f.GetAllAmenities(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch amenities")
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetAmenityHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := f.GetAmenity(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to fetch amenity")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// UpdateAmenityHandler applies a partial update; admin only
func UpdateAmenityHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in facade.AmenityInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		view, err := f.UpdateAmenity(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, "Failed to update amenity")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
