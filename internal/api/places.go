package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"hbnb/internal/facade" // Business facade

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// PlaceAmenitiesRequest lists amenity ids to attach to a place
type PlaceAmenitiesRequest struct {
	AmenityIDs []string `json:"amenities_ids"` // Amenity ids to link
}

// CreatePlaceHandler creates a place owned by the caller
func CreatePlaceHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in facade.PlaceInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		view, err := f.CreatePlace(c.Request.Context(), actor, in)
		if err != nil {
			respondError(c, err, "Failed to create place")
			return
		}
		logrus.WithFields(logrus.Fields{
			"place_id": view.ID,      // New place
			"user_id":  actor.UserID, // Owner
		}).Info("Place created")
		c.JSON(http.StatusCreated, view)
	}
}

// GetPlacesHandler lists places, optionally filtered by price range,
// amenity and owner
func GetPlacesHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := facade.PlaceFilter{
			AmenityID: c.Query("amenity_id"),
			OwnerID:   c.Query("owner_id"),
		}
		// Parse optional price bounds
		for _, q := range []struct {
			name string
			dst  **float64
		}{{"min_price", &filter.MinPrice}, {"max_price", &filter.MaxPrice}} {
			raw := c.Query(q.name)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + q.name})
				return
			}
			*q.dst = &v
		}
		views, err := f.SearchPlaces(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "Failed to fetch places")
			return
		}
		if len(views) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No places found"})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetPlaceHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := f.GetPlace(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to fetch place")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// UpdatePlaceHandler updates a place the caller owns (admins may update any)
func UpdatePlaceHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in facade.PlaceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		view, err := f.UpdatePlace(c.Request.Context(), actor, c.Param("id"), in)
		if err != nil {
			respondError(c, err, "Failed to update this place")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// DeletePlaceHandler removes a place with its reviews and amenity links
func DeletePlaceHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		id := c.Param("id")
		if err := f.DeletePlace(c.Request.Context(), actor, id); err != nil {
			respondError(c, err, "Failed to delete place")
			return
		}
		logrus.WithFields(logrus.Fields{
			"place_id": id,
			"user_id":  actor.UserID,
		}).Info("Place deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Place deleted successfully"})
	}
}

// AddPlaceAmenitiesHandler links more amenities to a place; existing links are kept
func AddPlaceAmenitiesHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var req PlaceAmenitiesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		view, err := f.AddPlaceAmenities(c.Request.Context(), actor, c.Param("id"), req.AmenityIDs)
		if err != nil {
			respondError(c, err, "Failed to add amenities")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func GetPlaceAmenitiesHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		amenities, err := f.GetPlaceAmenities(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to fetch amenities")
			return
		}
		c.JSON(http.StatusOK, amenities)
	}
}

// GetPlaceReviewsHandler lists the reviews of one place
func GetPlaceReviewsHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := f.GetReviewsByPlace(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to fetch reviews")
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// CreatePlaceReviewHandler reviews the place named in the path
func CreatePlaceReviewHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in facade.ReviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		placeID := c.Param("id") // Path wins over any place_id in the body
		in.PlaceID = &placeID
		createReview(c, f, actor, in)
	}
}
