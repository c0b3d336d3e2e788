package repository

import (
	"context"

	"hbnb/internal/domain"

	"gorm.io/gorm"
)

// Store hands out the entity repositories and runs atomic units of work
type Store interface {
	Users() UserRepository
	Places() PlaceRepository
	Amenities() AmenityRepository
	Reviews() ReviewRepository
	Links() LinkRepository
	// Atomic runs fn against repositories bound to a single transaction.
	// Any error from fn rolls the whole unit back.
	Atomic(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error
}

// GormStore is the gorm-backed Store
type GormStore struct {
	db        *gorm.DB
	users     userRepository
	places    placeRepository
	amenities amenityRepository
	reviews   reviewRepository
	links     linkRepository
}

// NewGormStore wires every repository onto db
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:        db,
		users:     userRepository{newGormRepository[domain.User](db, "user")},
		places:    placeRepository{newGormRepository[domain.Place](db, "place")},
		amenities: amenityRepository{newGormRepository[domain.Amenity](db, "amenity")},
		reviews:   reviewRepository{newGormRepository[domain.Review](db, "review")},
		links:     linkRepository{db: db},
	}
}

func (s *GormStore) Users() UserRepository { return s.users }
func (s *GormStore) Places() PlaceRepository { return s.places }
func (s *GormStore) Amenities() AmenityRepository { return s.amenities }
func (s *GormStore) Reviews() ReviewRepository { return s.reviews }
func (s *GormStore) Links() LinkRepository { return s.links }

func (s *GormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
	if err != nil && domain.KindOf(err) == 0 {
		return domain.Persistence("transaction failed", err)
	}
	return err
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return domain.Persistence("failed to get sql.DB", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return domain.Persistence("database unreachable", err)
	}
	return nil
}

// Models lists every table the store needs, in migration order
func Models() []any {
	return []any{&domain.User{}, &domain.Amenity{}, &domain.Place{}, &domain.PlaceAmenity{}, &domain.Review{}}
}
