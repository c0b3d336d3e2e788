// Package facade is the single entry point API handlers call. It owns every
// business rule: field validation, referential checks, uniqueness of emails
// and reviews, and owner/admin authorization. Not-found is always decided
// before permission.
package facade

import (
	"context"
	"errors"
	"sort"
	"strings"

	"hbnb/internal/domain"
	"hbnb/internal/repository"
)

// ErrInvalidCredentials is returned by Authenticate for any email/password mismatch
var ErrInvalidCredentials = errors.New("invalid credentials")

// Actor is the authenticated caller as resolved from the bearer token
type Actor struct {
	UserID  string
	IsAdmin bool
}

// owns reports whether the actor may modify a resource recorded under ownerID.
// Admins may modify anything.
func (a Actor) owns(ownerID string) bool {
	return a.IsAdmin || (a.UserID != "" && a.UserID == ownerID)
}

// Facade coordinates the repositories. It holds no per-request state and is
// safe to share between goroutines.
type Facade struct {
	store  repository.Store
	hasher domain.PasswordHasher
}

// New builds a Facade over store, hashing passwords with hasher
func New(store repository.Store, hasher domain.PasswordHasher) *Facade {
	return &Facade{store: store, hasher: hasher}
}

// Ping checks the backing store
func (f *Facade) Ping(ctx context.Context) error {
	return f.store.Ping(ctx)
}

// missingFields builds the validation error for absent required keys
func missingFields(names ...string) error {
	if len(names) == 0 {
		return nil
	}
	return domain.Validationf("missing required fields: %s", strings.Join(names, ", "))
}

// unresolved lists the ids in want that are not in found, sorted
func unresolved(want []string, found map[string]struct{}) []string {
	var missing []string
	for _, id := range want {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

func resolveAmenities(ctx context.Context, s repository.Store, ids []string) ([]domain.Amenity, error) {
	if len(ids) == 0 {
		return []domain.Amenity{}, nil
	}
	amenities, err := s.Amenities().GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[string]struct{}, len(amenities))
	for _, a := range amenities {
		found[a.ID] = struct{}{}
	}
	if missing := unresolved(ids, found); len(missing) > 0 {
		return nil, domain.Validationf("unknown amenity ids: %s", strings.Join(missing, ", "))
	}
	return amenities, nil
}

func resolvePlaces(ctx context.Context, s repository.Store, ids []string) ([]domain.Place, error) {
	if len(ids) == 0 {
		return []domain.Place{}, nil
	}
	places, err := s.Places().GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[string]struct{}, len(places))
	for _, p := range places {
		found[p.ID] = struct{}{}
	}
	if missing := unresolved(ids, found); len(missing) > 0 {
		return nil, domain.Validationf("unknown place ids: %s", strings.Join(missing, ", "))
	}
	return places, nil
}

func placePairs(placeID string, amenityIDs []string) []domain.PlaceAmenity {
	pairs := make([]domain.PlaceAmenity, 0, len(amenityIDs))
	for _, id := range amenityIDs {
		pairs = append(pairs, domain.PlaceAmenity{PlaceID: placeID, AmenityID: id})
	}
	return pairs
}

func amenityPairs(amenityID string, placeIDs []string) []domain.PlaceAmenity {
	pairs := make([]domain.PlaceAmenity, 0, len(placeIDs))
	for _, id := range placeIDs {
		pairs = append(pairs, domain.PlaceAmenity{PlaceID: id, AmenityID: amenityID})
	}
	return pairs
}
