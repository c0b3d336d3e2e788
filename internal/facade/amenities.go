package facade

import (
	"context"
	"time"

	"hbnb/internal/domain"
	"hbnb/internal/repository"
)

// AmenityInput is the payload for amenity create and update. On update a
// nil field is left unchanged; a non-nil AssociatedPlaces (even empty)
// replaces the whole set of linked places.
type AmenityInput struct {
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	AssociatedPlaces *[]string `json:"associated_places"`
}

// AmenityView is the response shape of an amenity
type AmenityView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PlaceIDs    []string  `json:"associated_places"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newAmenityView(a *domain.Amenity, placeIDs []string) *AmenityView {
	if placeIDs == nil {
		placeIDs = []string{}
	}
	return &AmenityView{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		PlaceIDs:    placeIDs,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// CreateAmenity persists an amenity and links it to the listed places.
// Any unknown place id fails the whole operation.
func (f *Facade) CreateAmenity(ctx context.Context, in AmenityInput) (*AmenityView, error) {
	if in.Name == nil {
		return nil, missingFields("name")
	}
	description := ""
	if in.Description != nil {
		description = *in.Description
	}
	amenity, err := domain.NewAmenity(*in.Name, description)
	if err != nil {
		return nil, err
	}
	var placeIDs []string
	if in.AssociatedPlaces != nil {
		placeIDs = domain.Dedupe(*in.AssociatedPlaces)
	}

	err = f.store.Atomic(ctx, func(s repository.Store) error {
		if _, err := resolvePlaces(ctx, s, placeIDs); err != nil {
			return err
		}
		if err := s.Amenities().Add(ctx, amenity); err != nil {
			return err
		}
		return s.Links().Link(ctx, amenityPairs(amenity.ID, placeIDs))
	})
	if err != nil {
		return nil, err
	}
	return newAmenityView(amenity, placeIDs), nil
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*AmenityView, error) {
	amenity, err := f.store.Amenities().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, domain.NotFoundf("amenity not found")
	}
	placeIDs, err := f.store.Links().PlaceIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return newAmenityView(amenity, placeIDs), nil
}

func (f *Facade) GetAllAmenities(ctx context.Context) ([]AmenityView, error) {
	amenities, err := f.store.Amenities().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AmenityView, 0, len(amenities))
	for i := range amenities {
		placeIDs, err := f.store.Links().PlaceIDs(ctx, amenities[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *newAmenityView(&amenities[i], placeIDs))
	}
	return out, nil
}

// UpdateAmenity applies a partial update. When AssociatedPlaces is present
// the linked places are reconciled: missing links are added, extra ones removed.
func (f *Facade) UpdateAmenity(ctx context.Context, id string, in AmenityInput) (*AmenityView, error) {
	var view *AmenityView
	err := f.store.Atomic(ctx, func(s repository.Store) error {
		amenity, err := s.Amenities().Get(ctx, id)
		if err != nil {
			return err
		}
		if amenity == nil {
			return domain.NotFoundf("amenity not found")
		}

		fields := map[string]any{}
		if in.Name != nil {
			name, err := domain.ValidateAmenityName(*in.Name)
			if err != nil {
				return err
			}
			fields["name"] = name
		}
		if in.Description != nil {
			fields["description"] = *in.Description
		}

		current, err := s.Links().PlaceIDs(ctx, id)
		if err != nil {
			return err
		}
		linksChanged := false
		if in.AssociatedPlaces != nil {
			desired := domain.Dedupe(*in.AssociatedPlaces)
			if _, err := resolvePlaces(ctx, s, desired); err != nil {
				return err
			}
			add, remove := domain.DiffLinks(current, desired)
			if err := s.Links().Link(ctx, amenityPairs(id, add)); err != nil {
				return err
			}
			if err := s.Links().Unlink(ctx, amenityPairs(id, remove)); err != nil {
				return err
			}
			linksChanged = len(add)+len(remove) > 0
			if current, err = s.Links().PlaceIDs(ctx, id); err != nil {
				return err
			}
		}

		if len(fields) > 0 || linksChanged {
			if amenity, err = s.Amenities().Update(ctx, id, fields); err != nil {
				return err
			}
		}
		view = newAmenityView(amenity, current)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
