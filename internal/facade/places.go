package facade

import (
	"context"
	"math"
	"sort"
	"time"

	"hbnb/internal/domain"
	"hbnb/internal/repository"
)

// PlaceInput is the payload for place create and update. On update a nil
// field is left unchanged; a non-nil AssociatedAmenities (even empty)
// replaces the whole linkage set.
type PlaceInput struct {
	Title               *string   `json:"title"`
	Description         *string   `json:"description"`
	Price               *float64  `json:"price"`
	Latitude            *float64  `json:"latitude"`
	Longitude           *float64  `json:"longitude"`
	AssociatedAmenities *[]string `json:"associated_amenities"`
}

// AmenityRef names a linked amenity inside a PlaceView
type AmenityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlaceView is the response shape of a place with its linked amenities
type PlaceView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	OwnerID     string       `json:"user_id"`
	Amenities   []AmenityRef `json:"associated_amenities"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// AmenityIDs returns the ids of the linked amenities
func (v *PlaceView) AmenityIDs() []string {
	ids := make([]string, 0, len(v.Amenities))
	for _, a := range v.Amenities {
		ids = append(ids, a.ID)
	}
	return ids
}

// PlaceFilter narrows SearchPlaces. Zero values mean "no constraint".
type PlaceFilter struct {
	MinPrice  *float64
	MaxPrice  *float64
	AmenityID string
	OwnerID   string
}

func newPlaceView(p *domain.Place, amenities []domain.Amenity) *PlaceView {
	refs := make([]AmenityRef, 0, len(amenities))
	for _, a := range amenities {
		refs = append(refs, AmenityRef{ID: a.ID, Name: a.Name})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].ID < refs[j].ID
	})
	return &PlaceView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		OwnerID:     p.UserID,
		Amenities:   refs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// placeViews projects places with their amenities using two batched lookups
func placeViews(ctx context.Context, s repository.Store, places []domain.Place) ([]PlaceView, error) {
	ids := make([]string, 0, len(places))
	for _, p := range places {
		ids = append(ids, p.ID)
	}
	pairs, err := s.Links().ForPlaces(ctx, ids)
	if err != nil {
		return nil, err
	}
	amenityIDs := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		amenityIDs = append(amenityIDs, pair.AmenityID)
	}
	amenities, err := s.Amenities().GetByIDs(ctx, domain.Dedupe(amenityIDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Amenity, len(amenities))
	for _, a := range amenities {
		byID[a.ID] = a
	}
	linked := make(map[string][]domain.Amenity, len(places))
	for _, pair := range pairs {
		if a, ok := byID[pair.AmenityID]; ok {
			linked[pair.PlaceID] = append(linked[pair.PlaceID], a)
		}
	}
	out := make([]PlaceView, 0, len(places))
	for i := range places {
		out = append(out, *newPlaceView(&places[i], linked[places[i].ID]))
	}
	return out, nil
}

func placeView(ctx context.Context, s repository.Store, p *domain.Place) (*PlaceView, error) {
	views, err := placeViews(ctx, s, []domain.Place{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreatePlace persists a place owned by the actor together with its amenity
// links, as one unit. Unknown amenity ids fail the whole operation.
func (f *Facade) CreatePlace(ctx context.Context, actor Actor, in PlaceInput) (*PlaceView, error) {
	var missing []string
	if in.Title == nil {
		missing = append(missing, "title")
	}
	if in.Description == nil {
		missing = append(missing, "description")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if in.Longitude == nil {
		missing = append(missing, "longitude")
	}
	if err := missingFields(missing...); err != nil {
		return nil, err
	}
	place, err := domain.NewPlace(*in.Title, *in.Description, *in.Price, *in.Latitude, *in.Longitude, actor.UserID)
	if err != nil {
		return nil, err
	}
	var amenityIDs []string
	if in.AssociatedAmenities != nil {
		amenityIDs = domain.Dedupe(*in.AssociatedAmenities)
	}

	var view *PlaceView
	err = f.store.Atomic(ctx, func(s repository.Store) error {
		owner, err := s.Users().Get(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domain.NotFoundf("user not found")
		}
		amenities, err := resolveAmenities(ctx, s, amenityIDs)
		if err != nil {
			return err
		}
		if err := s.Places().Add(ctx, place); err != nil {
			return err
		}
		if err := s.Links().Link(ctx, placePairs(place.ID, amenityIDs)); err != nil {
			return err
		}
		view = newPlaceView(place, amenities)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (f *Facade) GetPlace(ctx context.Context, id string) (*PlaceView, error) {
	place, err := f.store.Places().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, domain.NotFoundf("place not found")
	}
	return placeView(ctx, f.store, place)
}

func (f *Facade) GetAllPlaces(ctx context.Context) ([]PlaceView, error) {
	return f.SearchPlaces(ctx, PlaceFilter{})
}

// SearchPlaces intersects the price-range, amenity and owner lookups that the
// filter asks for. An empty filter returns every place.
func (f *Facade) SearchPlaces(ctx context.Context, filter PlaceFilter) ([]PlaceView, error) {
	var sets [][]domain.Place
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		lo, hi := 0.0, math.MaxFloat64
		if filter.MinPrice != nil {
			lo = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			hi = *filter.MaxPrice
		}
		if lo < 0 || hi < lo {
			return nil, domain.Validationf("invalid price range")
		}
		places, err := f.store.Places().GetByPriceRange(ctx, lo, hi)
		if err != nil {
			return nil, err
		}
		sets = append(sets, places)
	}
	if filter.AmenityID != "" {
		places, err := f.store.Places().GetByAmenity(ctx, filter.AmenityID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, places)
	}
	if filter.OwnerID != "" {
		places, err := f.store.Places().GetByOwner(ctx, filter.OwnerID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, places)
	}
	if len(sets) == 0 {
		places, err := f.store.Places().GetAll(ctx)
		if err != nil {
			return nil, err
		}
		sets = append(sets, places)
	}
	return placeViews(ctx, f.store, intersectPlaces(sets))
}

// intersectPlaces keeps the places present in every set, in the order of the first
func intersectPlaces(sets [][]domain.Place) []domain.Place {
	out := sets[0]
	for _, other := range sets[1:] {
		keep := make(map[string]struct{}, len(other))
		for _, p := range other {
			keep[p.ID] = struct{}{}
		}
		var next []domain.Place
		for _, p := range out {
			if _, ok := keep[p.ID]; ok {
				next = append(next, p)
			}
		}
		out = next
	}
	return out
}

// UpdatePlace applies a partial update on behalf of the owner or an admin
func (f *Facade) UpdatePlace(ctx context.Context, actor Actor, id string, in PlaceInput) (*PlaceView, error) {
	return f.updatePlace(ctx, id, in, func(p *domain.Place) error {
		if !actor.owns(p.UserID) {
			return domain.Forbiddenf("unauthorized action")
		}
		return nil
	})
}

// AdminUpdatePlace updates any place. The admin claim is checked up front,
// before the place is looked up.
func (f *Facade) AdminUpdatePlace(ctx context.Context, actor Actor, id string, in PlaceInput) (*PlaceView, error) {
	if !actor.IsAdmin {
		return nil, domain.Forbiddenf("admin privileges required")
	}
	return f.updatePlace(ctx, id, in, nil)
}

func (f *Facade) updatePlace(ctx context.Context, id string, in PlaceInput, authorize func(*domain.Place) error) (*PlaceView, error) {
	var view *PlaceView
	err := f.store.Atomic(ctx, func(s repository.Store) error {
		place, err := s.Places().Get(ctx, id)
		if err != nil {
			return err
		}
		if place == nil {
			return domain.NotFoundf("place not found")
		}
		if authorize != nil {
			if err := authorize(place); err != nil {
				return err
			}
		}

		fields, err := placeFields(in)
		if err != nil {
			return err
		}
		linksChanged := false
		if in.AssociatedAmenities != nil {
			desired := domain.Dedupe(*in.AssociatedAmenities)
			if _, err := resolveAmenities(ctx, s, desired); err != nil {
				return err
			}
			current, err := s.Links().AmenityIDs(ctx, id)
			if err != nil {
				return err
			}
			add, remove := domain.DiffLinks(current, desired)
			if err := s.Links().Link(ctx, placePairs(id, add)); err != nil {
				return err
			}
			if err := s.Links().Unlink(ctx, placePairs(id, remove)); err != nil {
				return err
			}
			linksChanged = len(add)+len(remove) > 0
		}
		if len(fields) > 0 || linksChanged {
			if place, err = s.Places().Update(ctx, id, fields); err != nil {
				return err
			}
		}
		view, err = placeView(ctx, s, place)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// placeFields validates the supplied fields and maps them to columns
func placeFields(in PlaceInput) (map[string]any, error) {
	fields := map[string]any{}
	if in.Title != nil {
		t, err := domain.ValidateTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = t
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if err := domain.ValidatePrice(*in.Price); err != nil {
			return nil, err
		}
		fields["price"] = *in.Price
	}
	if in.Latitude != nil {
		if err := domain.ValidateLatitude(*in.Latitude); err != nil {
			return nil, err
		}
		fields["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		if err := domain.ValidateLongitude(*in.Longitude); err != nil {
			return nil, err
		}
		fields["longitude"] = *in.Longitude
	}
	return fields, nil
}

// DeletePlace removes a place with its amenity links and reviews
func (f *Facade) DeletePlace(ctx context.Context, actor Actor, id string) error {
	return f.store.Atomic(ctx, func(s repository.Store) error {
		place, err := s.Places().Get(ctx, id)
		if err != nil {
			return err
		}
		if place == nil {
			return domain.NotFoundf("place not found")
		}
		if !actor.owns(place.UserID) {
			return domain.Forbiddenf("unauthorized action")
		}
		if err := s.Links().DeleteByPlace(ctx, id); err != nil {
			return err
		}
		if _, err := s.Reviews().DeleteByPlace(ctx, id); err != nil {
			return err
		}
		deleted, err := s.Places().Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.NotFoundf("place not found")
		}
		return nil
	})
}

// AddPlaceAmenities links more amenities to a place. Already linked ids are
// left as they are, so repeating the call is harmless.
func (f *Facade) AddPlaceAmenities(ctx context.Context, actor Actor, id string, amenityIDs []string) (*PlaceView, error) {
	var view *PlaceView
	err := f.store.Atomic(ctx, func(s repository.Store) error {
		place, err := s.Places().Get(ctx, id)
		if err != nil {
			return err
		}
		if place == nil {
			return domain.NotFoundf("place not found")
		}
		if !actor.owns(place.UserID) {
			return domain.Forbiddenf("unauthorized action")
		}
		ids := domain.Dedupe(amenityIDs)
		if len(ids) == 0 {
			return domain.Validationf("amenity ids are required")
		}
		if _, err := resolveAmenities(ctx, s, ids); err != nil {
			return err
		}
		current, err := s.Links().AmenityIDs(ctx, id)
		if err != nil {
			return err
		}
		add, _ := domain.DiffLinks(current, append(current, ids...))
		if len(add) > 0 {
			if err := s.Links().Link(ctx, placePairs(id, add)); err != nil {
				return err
			}
			if place, err = s.Places().Update(ctx, id, nil); err != nil {
				return err
			}
		}
		view, err = placeView(ctx, s, place)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetPlaceAmenities returns the amenities linked to a place
func (f *Facade) GetPlaceAmenities(ctx context.Context, id string) ([]domain.Amenity, error) {
	place, err := f.store.Places().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, domain.NotFoundf("place not found")
	}
	ids, err := f.store.Links().AmenityIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.store.Amenities().GetByIDs(ctx, ids)
}
