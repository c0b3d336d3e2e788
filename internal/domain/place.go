package domain

import "strings"

// Place Model
type Place struct {
	Base
	Title       string  `gorm:"size:100;not null" json:"title"`        // Listing title
	Description string  `gorm:"type:text" json:"description"`          // Free text
	Price       float64 `gorm:"not null;index" json:"price"`           // Price per night
	Latitude    float64 `gorm:"not null" json:"latitude"`              // -90..90
	Longitude   float64 `gorm:"not null" json:"longitude"`             // -180..180
	UserID      string  `gorm:"size:36;not null;index" json:"user_id"` // Owner, taken from the caller identity
}

// NewPlace validates the listing fields and builds a Place owned by ownerID
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string) (*Place, error) {
	t, err := ValidateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := ValidatePrice(price); err != nil {
		return nil, err
	}
	if err := ValidateLatitude(latitude); err != nil {
		return nil, err
	}
	if err := ValidateLongitude(longitude); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, Validationf("owner is required")
	}
	return &Place{
		Base:        newBase(),
		Title:       t,
		Description: description,
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		UserID:      ownerID,
	}, nil
}

func ValidateTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", Validationf("title is required")
	}
	if len(t) > 100 {
		return "", Validationf("title must be at most 100 characters")
	}
	return t, nil
}

func ValidatePrice(price float64) error {
	if price < 0 {
		return Validationf("price must be a non-negative number")
	}
	return nil
}

func ValidateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return Validationf("latitude must be between -90 and 90")
	}
	return nil
}

func ValidateLongitude(lon float64) error {
	if lon < -180 || lon > 180 {
		return Validationf("longitude must be between -180 and 180")
	}
	return nil
}
