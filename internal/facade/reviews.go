package facade

import (
	"context"

	"hbnb/internal/domain"
	"hbnb/internal/repository"
)

// ReviewInput is the review payload. The author always comes from the actor.
type ReviewInput struct {
	Text    *string `json:"text"`
	Rating  *int    `json:"rating"`
	PlaceID *string `json:"place_id"`
}

// CreateReview checks, in order: required fields, rating range, non-blank
// text, that the place and the author exist, that the author does not own the
// place, and that the author has not reviewed it yet. Nothing is written
// unless every check passes.
func (f *Facade) CreateReview(ctx context.Context, actor Actor, in ReviewInput) (*domain.Review, error) {
	var missing []string
	if in.Rating == nil {
		missing = append(missing, "rating")
	}
	if in.Text == nil {
		missing = append(missing, "text")
	}
	if in.PlaceID == nil || *in.PlaceID == "" {
		missing = append(missing, "place_id")
	}
	if err := missingFields(missing...); err != nil {
		return nil, err
	}
	if err := domain.ValidateRating(*in.Rating); err != nil {
		return nil, err
	}
	text, err := domain.ValidateReviewText(*in.Text)
	if err != nil {
		return nil, err
	}

	var review *domain.Review
	err = f.store.Atomic(ctx, func(s repository.Store) error {
		place, err := s.Places().Get(ctx, *in.PlaceID)
		if err != nil {
			return err
		}
		if place == nil {
			return domain.NotFoundf("place not found")
		}
		author, err := s.Users().Get(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if author == nil {
			return domain.NotFoundf("user not found")
		}
		if place.UserID == author.ID {
			return domain.Validationf("you cannot review your own place")
		}
		existing, err := s.Reviews().GetByUserAndPlace(ctx, author.ID, place.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflictf("you have already reviewed this place")
		}
		review = domain.NewReview(text, *in.Rating, author.ID, place.ID)
		return s.Reviews().Add(ctx, review)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (f *Facade) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := f.store.Reviews().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, domain.NotFoundf("review not found")
	}
	return review, nil
}

func (f *Facade) GetAllReviews(ctx context.Context) ([]domain.Review, error) {
	return f.store.Reviews().GetAll(ctx)
}

// GetReviewsByPlace lists the reviews of an existing place
func (f *Facade) GetReviewsByPlace(ctx context.Context, placeID string) ([]domain.Review, error) {
	place, err := f.store.Places().Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, domain.NotFoundf("place not found")
	}
	return f.store.Reviews().GetByPlace(ctx, placeID)
}

// UpdateReview changes text and/or rating on behalf of the author or an admin.
// The reviewed place cannot be changed.
func (f *Facade) UpdateReview(ctx context.Context, actor Actor, id string, in ReviewInput) (*domain.Review, error) {
	var updated *domain.Review
	err := f.store.Atomic(ctx, func(s repository.Store) error {
		review, err := s.Reviews().Get(ctx, id)
		if err != nil {
			return err
		}
		if review == nil {
			return domain.NotFoundf("review not found")
		}
		if !actor.owns(review.UserID) {
			return domain.Forbiddenf("unauthorized action")
		}
		fields := map[string]any{}
		if in.Text != nil {
			text, err := domain.ValidateReviewText(*in.Text)
			if err != nil {
				return err
			}
			fields["text"] = text
		}
		if in.Rating != nil {
			if err := domain.ValidateRating(*in.Rating); err != nil {
				return err
			}
			fields["rating"] = *in.Rating
		}
		if len(fields) == 0 {
			updated = review
			return nil
		}
		updated, err = s.Reviews().Update(ctx, id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (f *Facade) DeleteReview(ctx context.Context, actor Actor, id string) error {
	return f.store.Atomic(ctx, func(s repository.Store) error {
		review, err := s.Reviews().Get(ctx, id)
		if err != nil {
			return err
		}
		if review == nil {
			return domain.NotFoundf("review not found")
		}
		if !actor.owns(review.UserID) {
			return domain.Forbiddenf("unauthorized action")
		}
		deleted, err := s.Reviews().Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.NotFoundf("review not found")
		}
		return nil
	})
}
