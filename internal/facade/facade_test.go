package facade_test

import (
	"context"
	"testing"

	"hbnb/internal/domain"
	"hbnb/internal/facade"
	"hbnb/internal/repository/repotest"
	"hbnb/internal/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	ctx   context.Context
	f     *facade.Facade
	owner facade.Actor
	guest facade.Actor
	admin facade.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		ctx: context.Background(),
		f:   facade.New(repotest.NewStore(t), utils.BcryptHasher{Cost: bcrypt.MinCost}),
	}
	fx.owner = fx.user(t, "owner@example.com", false)
	fx.guest = fx.user(t, "guest@example.com", false)
	fx.admin = fx.user(t, "admin@example.com", true)
	return fx
}

func (fx *fixture) user(t *testing.T, email string, admin bool) facade.Actor {
	t.Helper()
	u, err := fx.f.CreateUser(fx.ctx, domain.UserParams{
		FirstName: "First",
		LastName:  "Last",
		Email:     email,
		Password:  "password",
		IsAdmin:   admin,
	})
	require.NoError(t, err)
	return facade.Actor{UserID: u.ID, IsAdmin: admin}
}

func (fx *fixture) amenity(t *testing.T, name string) *facade.AmenityView {
	t.Helper()
	a, err := fx.f.CreateAmenity(fx.ctx, facade.AmenityInput{Name: ptr(name)})
	require.NoError(t, err)
	return a
}

func (fx *fixture) place(t *testing.T, owner facade.Actor, price float64, amenityIDs ...string) *facade.PlaceView {
	t.Helper()
	in := facade.PlaceInput{
		Title:       ptr("Cosy flat"),
		Description: ptr("Close to everything"),
		Price:       ptr(price),
		Latitude:    ptr(40.4),
		Longitude:   ptr(-3.7),
	}
	if amenityIDs != nil {
		in.AssociatedAmenities = &amenityIDs
	}
	p, err := fx.f.CreatePlace(fx.ctx, owner, in)
	require.NoError(t, err)
	return p
}
