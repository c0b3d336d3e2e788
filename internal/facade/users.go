package facade

import (
	"context"

	"hbnb/internal/domain"
	"hbnb/internal/repository"
)

// UserUpdate carries the optional fields of a user update; nil means unchanged
type UserUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}

// CreateUser validates params, rejects an email that is already registered
// and persists the new user.
func (f *Facade) CreateUser(ctx context.Context, p domain.UserParams) (*domain.User, error) {
	user, err := domain.NewUser(p, f.hasher)
	if err != nil {
		return nil, err
	}
	existing, err := f.store.Users().GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflictf("email already registered")
	}
	if err := f.store.Users().Add(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (f *Facade) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := f.store.Users().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFoundf("user not found")
	}
	return user, nil
}

func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := f.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFoundf("user not found")
	}
	return user, nil
}

func (f *Facade) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return f.store.Users().GetAll(ctx)
}

// ListUsers returns one page of users (page starts at 1) and the total count
func (f *Facade) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return f.store.Users().Page(ctx, (page-1)*pageSize, pageSize)
}

// UpdateUser lets a user edit their own names. Admins may edit any user,
// including email, password and the admin flag.
func (f *Facade) UpdateUser(ctx context.Context, actor Actor, id string, in UserUpdate) (*domain.User, error) {
	var updated *domain.User
	err := f.store.Atomic(ctx, func(s repository.Store) error {
		user, err := s.Users().Get(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NotFoundf("user not found")
		}
		if !actor.owns(user.ID) {
			return domain.Forbiddenf("unauthorized action")
		}
		if !actor.IsAdmin && (in.Email != nil || in.Password != nil || in.IsAdmin != nil) {
			return domain.Forbiddenf("you cannot modify email, password or admin status")
		}

		fields := map[string]any{}
		if in.FirstName != nil {
			v, err := domain.ValidateName("first name", *in.FirstName)
			if err != nil {
				return err
			}
			fields["first_name"] = v
		}
		if in.LastName != nil {
			v, err := domain.ValidateName("last name", *in.LastName)
			if err != nil {
				return err
			}
			fields["last_name"] = v
		}
		if in.Email != nil {
			email, err := domain.NormalizeEmail(*in.Email)
			if err != nil {
				return err
			}
			if email != user.Email {
				other, err := s.Users().GetByEmail(ctx, email)
				if err != nil {
					return err
				}
				if other != nil {
					return domain.Conflictf("email already registered")
				}
				fields["email"] = email
			}
		}
		if in.Password != nil {
			if *in.Password == "" {
				return domain.Validationf("password is required")
			}
			hash, err := f.hasher.Hash(*in.Password)
			if err != nil {
				return domain.Persistence("failed to hash password", err)
			}
			fields["password_hash"] = hash
		}
		if in.IsAdmin != nil {
			fields["is_admin"] = *in.IsAdmin
		}
		if len(fields) == 0 {
			updated = user
			return nil
		}
		updated, err = s.Users().Update(ctx, id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Authenticate returns the user owning email when password matches
func (f *Facade) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := f.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(f.hasher, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
