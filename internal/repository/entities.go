package repository

import (
	"context"
	"errors"
	"strings"

	"hbnb/internal/domain"

	"gorm.io/gorm"
)

type UserRepository interface {
	Repository[domain.User]
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type PlaceRepository interface {
	Repository[domain.Place]
	GetByIDs(ctx context.Context, ids []string) ([]domain.Place, error)
	GetByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.Place, error)
	GetByAmenity(ctx context.Context, amenityID string) ([]domain.Place, error)
	GetByOwner(ctx context.Context, ownerID string) ([]domain.Place, error)
}

type ReviewRepository interface {
	Repository[domain.Review]
	GetByPlace(ctx context.Context, placeID string) ([]domain.Review, error)
	GetByUserAndPlace(ctx context.Context, userID, placeID string) (*domain.Review, error)
	DeleteByPlace(ctx context.Context, placeID string) (int64, error)
}

type AmenityRepository interface {
	Repository[domain.Amenity]
	GetByIDs(ctx context.Context, ids []string) ([]domain.Amenity, error)
}

type userRepository struct {
	gormRepository[domain.User]
}

// GetByEmail matches case-insensitively; emails are stored lower-cased
func (r userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("failed to get user by email", err)
	}
	return &u, nil
}

type placeRepository struct {
	gormRepository[domain.Place]
}

func (r placeRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Place, error) {
	return r.byIDs(ctx, ids)
}

// GetByPriceRange returns places priced within [minPrice, maxPrice]
func (r placeRepository) GetByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.Place, error) {
	var out []domain.Place
	err := r.db.WithContext(ctx).Where("price BETWEEN ? AND ?", minPrice, maxPrice).Order("price asc").Find(&out).Error
	if err != nil {
		return nil, domain.Persistence("failed to get places by price range", err)
	}
	return out, nil
}

func (r placeRepository) GetByAmenity(ctx context.Context, amenityID string) ([]domain.Place, error) {
	var out []domain.Place
	err := r.db.WithContext(ctx).
		Joins("JOIN place_amenity ON place_amenity.place_id = places.id").
		Where("place_amenity.amenity_id = ?", amenityID).
		Order("places.created_at asc").
		Find(&out).Error
	if err != nil {
		return nil, domain.Persistence("failed to get places by amenity", err)
	}
	return out, nil
}

func (r placeRepository) GetByOwner(ctx context.Context, ownerID string) ([]domain.Place, error) {
	var out []domain.Place
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at asc").Find(&out).Error; err != nil {
		return nil, domain.Persistence("failed to get places by owner", err)
	}
	return out, nil
}

type reviewRepository struct {
	gormRepository[domain.Review]
}

func (r reviewRepository) GetByPlace(ctx context.Context, placeID string) ([]domain.Review, error) {
	var out []domain.Review
	if err := r.db.WithContext(ctx).Where("place_id = ?", placeID).Order("created_at asc").Find(&out).Error; err != nil {
		return nil, domain.Persistence("failed to get reviews by place", err)
	}
	return out, nil
}

func (r reviewRepository) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).Where("user_id = ? AND place_id = ?", userID, placeID).Take(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("failed to get review by user and place", err)
	}
	return &rv, nil
}

func (r reviewRepository) DeleteByPlace(ctx context.Context, placeID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("place_id = ?", placeID).Delete(&domain.Review{})
	if res.Error != nil {
		return 0, domain.Persistence("failed to delete reviews by place", res.Error)
	}
	return res.RowsAffected, nil
}

type amenityRepository struct {
	gormRepository[domain.Amenity]
}

func (r amenityRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Amenity, error) {
	return r.byIDs(ctx, ids)
}
