package repository

import (
	"context"

	"hbnb/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkRepository stores the Place<->Amenity linkage set as explicit pairs
type LinkRepository interface {
	AmenityIDs(ctx context.Context, placeID string) ([]string, error)
	PlaceIDs(ctx context.Context, amenityID string) ([]string, error)
	ForPlaces(ctx context.Context, placeIDs []string) ([]domain.PlaceAmenity, error)
	Link(ctx context.Context, pairs []domain.PlaceAmenity) error
	Unlink(ctx context.Context, pairs []domain.PlaceAmenity) error
	DeleteByPlace(ctx context.Context, placeID string) error
}

type linkRepository struct {
	db *gorm.DB
}

func (r linkRepository) AmenityIDs(ctx context.Context, placeID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&domain.PlaceAmenity{}).
		Where("place_id = ?", placeID).
		Order("amenity_id asc").
		Pluck("amenity_id", &ids).Error
	if err != nil {
		return nil, domain.Persistence("failed to load amenity links", err)
	}
	return ids, nil
}

func (r linkRepository) PlaceIDs(ctx context.Context, amenityID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&domain.PlaceAmenity{}).
		Where("amenity_id = ?", amenityID).
		Order("place_id asc").
		Pluck("place_id", &ids).Error
	if err != nil {
		return nil, domain.Persistence("failed to load place links", err)
	}
	return ids, nil
}

// ForPlaces returns every pair whose place is in placeIDs
func (r linkRepository) ForPlaces(ctx context.Context, placeIDs []string) ([]domain.PlaceAmenity, error) {
	pairs := []domain.PlaceAmenity{}
	if len(placeIDs) == 0 {
		return pairs, nil
	}
	err := r.db.WithContext(ctx).Where("place_id IN ?", placeIDs).Order("place_id asc, amenity_id asc").Find(&pairs).Error
	if err != nil {
		return nil, domain.Persistence("failed to load amenity links", err)
	}
	return pairs, nil
}

// Link inserts the pairs, skipping any that already exist
func (r linkRepository) Link(ctx context.Context, pairs []domain.PlaceAmenity) error {
	if len(pairs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&pairs).Error
	if err != nil {
		return domain.Persistence("failed to link amenities", err)
	}
	return nil
}

func (r linkRepository) Unlink(ctx context.Context, pairs []domain.PlaceAmenity) error {
	for _, p := range pairs {
		err := r.db.WithContext(ctx).
			Where("place_id = ? AND amenity_id = ?", p.PlaceID, p.AmenityID).
			Delete(&domain.PlaceAmenity{}).Error
		if err != nil {
			return domain.Persistence("failed to unlink amenity", err)
		}
	}
	return nil
}

func (r linkRepository) DeleteByPlace(ctx context.Context, placeID string) error {
	if err := r.db.WithContext(ctx).Where("place_id = ?", placeID).Delete(&domain.PlaceAmenity{}).Error; err != nil {
		return domain.Persistence("failed to delete amenity links", err)
	}
	return nil
}
