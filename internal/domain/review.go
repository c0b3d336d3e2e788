package domain

import "strings"

const (
	MinRating = 1
	MaxRating = 5
)

// Review Model. One review per (author, place) pair.
type Review struct {
	Base
	Text    string `gorm:"type:text;not null" json:"text"`                                             // Review body
	Rating  int    `gorm:"not null" json:"rating"`                                                     // 1..5
	UserID  string `gorm:"size:36;not null;uniqueIndex:idx_review_author_place" json:"user_id"`        // Author
	PlaceID string `gorm:"size:36;not null;uniqueIndex:idx_review_author_place;index" json:"place_id"` // Reviewed place
}

// NewReview builds a Review. Callers validate rating and text first.
func NewReview(text string, rating int, userID, placeID string) *Review {
	return &Review{
		Base:    newBase(),
		Text:    strings.TrimSpace(text),
		Rating:  rating,
		UserID:  userID,
		PlaceID: placeID,
	}
}

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return Validationf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// ValidateReviewText returns the trimmed text or a validation error when blank
func ValidateReviewText(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", Validationf("text cannot be empty")
	}
	return t, nil
}
