package domain

import "strings"

// Amenity Model
type Amenity struct {
	Base
	Name        string `gorm:"size:100;not null" json:"name"` // Display name
	Description string `gorm:"size:512" json:"description"`   // Optional details
}

// NewAmenity builds an Amenity, requiring a non-blank name
func NewAmenity(name, description string) (*Amenity, error) {
	n, err := ValidateAmenityName(name)
	if err != nil {
		return nil, err
	}
	return &Amenity{Base: newBase(), Name: n, Description: strings.TrimSpace(description)}, nil
}

func ValidateAmenityName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", Validationf("name is required")
	}
	if len(n) > 100 {
		return "", Validationf("name must be at most 100 characters")
	}
	return n, nil
}
