package api

import (
	"net/http"

	"hbnb/internal/facade"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateReviewHandler reviews the place named by place_id
func CreateReviewHandler(f *facade.Facade) gin.HandlerFunc {
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
		createReview(c, f, actor, in)
	}
}

func createReview(c *gin.Context, f *facade.Facade, actor facade.Actor, in facade.ReviewInput) {
	review, err := f.CreateReview(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err, "Failed to create review")
		return
	}
	logrus.WithFields(logrus.Fields{
		"review_id": review.ID,
		"place_id":  review.PlaceID,
		"user_id":   actor.UserID,
	}).Info("Review created")
	c.JSON(http.StatusCreated, review)
}

func GetReviewsHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := f.GetAllReviews(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch reviews")
			return
		}
		if len(reviews) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No reviews found"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

func GetReviewHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		review, err := f.GetReview(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to fetch review")
			return
		}
		c.JSON(http.StatusOK, review)
	}
}

// UpdateReviewHandler changes text or rating of the caller's review
func UpdateReviewHandler(f *facade.Facade) gin.HandlerFunc {
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
		review, err := f.UpdateReview(c.Request.Context(), actor, c.Param("id"), in)
		if err != nil {
			respondError(c, err, "Failed to update review")
			return
		}
		c.JSON(http.StatusOK, review)
	}
}

func DeleteReviewHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		id := c.Param("id")
		if err := f.DeleteReview(c.Request.Context(), actor, id); err != nil {
			respondError(c, err, "Failed to delete review")
			return
		}
		logrus.WithFields(logrus.Fields{
			"review_id": id,
			"user_id":   actor.UserID,
		}).Info("Review deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
	}
}
