package facade_test

import (
	"testing"

	"hbnb/internal/domain"
	"hbnb/internal/facade"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.f.CreateUser(fx.ctx, domain.UserParams{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "Owner@Example.com",
		Password:  "pw",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateUserStoresHashOnly(t *testing.T) {
	fx := newFixture(t)

	u, err := fx.f.GetUser(fx.ctx, fx.owner.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, "password", u.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)
}

func TestGetUserMissing(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.f.GetUser(fx.ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = fx.f.GetUserByEmail(fx.ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	fx := newFixture(t)

	u, err := fx.f.Authenticate(fx.ctx, "guest@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, fx.guest.UserID, u.ID)

	_, err = fx.f.Authenticate(fx.ctx, "guest@example.com", "wrong")
	assert.ErrorIs(t, err, facade.ErrInvalidCredentials)

	_, err = fx.f.Authenticate(fx.ctx, "nobody@example.com", "password")
	assert.ErrorIs(t, err, facade.ErrInvalidCredentials)
}

func TestUpdateUser(t *testing.T) {
	fx := newFixture(t)

	t.Run("owner changes names", func(t *testing.T) {
		u, err := fx.f.UpdateUser(fx.ctx, fx.guest, fx.guest.UserID, facade.UserUpdate{FirstName: ptr(" Grace ")})
		require.NoError(t, err)
		assert.Equal(t, "Grace", u.FirstName)
	})

	t.Run("owner cannot change email", func(t *testing.T) {
		_, err := fx.f.UpdateUser(fx.ctx, fx.guest, fx.guest.UserID, facade.UserUpdate{Email: ptr("new@example.com")})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		_, err := fx.f.UpdateUser(fx.ctx, fx.guest, fx.owner.UserID, facade.UserUpdate{FirstName: ptr("X")})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing user is not found before forbidden", func(t *testing.T) {
		_, err := fx.f.UpdateUser(fx.ctx, fx.guest, "missing", facade.UserUpdate{FirstName: ptr("X")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("admin changes email and password", func(t *testing.T) {
		u, err := fx.f.UpdateUser(fx.ctx, fx.admin, fx.guest.UserID, facade.UserUpdate{
			Email:    ptr("Grace@Example.com"),
			Password: ptr("new-password"),
		})
		require.NoError(t, err)
		assert.Equal(t, "grace@example.com", u.Email)

		_, err = fx.f.Authenticate(fx.ctx, "grace@example.com", "new-password")
		assert.NoError(t, err)
	})

	t.Run("admin cannot take a used email", func(t *testing.T) {
		_, err := fx.f.UpdateUser(fx.ctx, fx.admin, fx.guest.UserID, facade.UserUpdate{Email: ptr("owner@example.com")})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := fx.f.UpdateUser(fx.ctx, fx.guest, fx.guest.UserID, facade.UserUpdate{LastName: ptr("  ")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestListUsers(t *testing.T) {
	fx := newFixture(t)

	users, total, err := fx.f.ListUsers(fx.ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 2)

	users, _, err = fx.f.ListUsers(fx.ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
