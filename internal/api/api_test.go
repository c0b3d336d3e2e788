package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hbnb/internal/api"
	"hbnb/internal/domain"
	"hbnb/internal/facade"
	"hbnb/internal/middleware"
	"hbnb/internal/repository/repotest"
	"hbnb/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type testServer struct {
	t      *testing.T
	router *gin.Engine
	f      *facade.Facade
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := facade.New(repotest.NewStore(t), utils.BcryptHasher{Cost: bcrypt.MinCost})
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	api.RegisterRoutes(r, api.Deps{
		Facade:       f,
		JWTSecret:    testSecret,
		TokenTTL:     time.Hour,
		Denylist:     utils.NewTokenDenylist(rdb),
		LoginLimiter: middleware.NewRateLimiter(100),
		Metrics:      middleware.NewMetrics(),
	})
	return &testServer{t: t, router: r, f: f}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) decode(w *httptest.ResponseRecorder, v any) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// register creates a user through the API and returns its id and a token
func (s *testServer) register(email string) (id, token string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"first_name": "Test", "last_name": "User", "email": email, "password": "password",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	s.decode(w, &created)
	return created.ID, s.login(email, "password")
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp api.AuthResponse
	s.decode(w, &resp)
	return resp.Token
}

func (s *testServer) admin() string {
	s.t.Helper()
	_, err := s.f.CreateUser(context.Background(), domain.UserParams{
		FirstName: "Admin", LastName: "User", Email: "admin@example.com", Password: "password", IsAdmin: true,
	})
	require.NoError(s.t, err)
	return s.login("admin@example.com", "password")
}

func (s *testServer) createPlace(token string, price float64, amenityIDs ...string) facade.PlaceView {
	s.t.Helper()
	body := gin.H{"title": "Loft", "description": "Bright", "price": price, "latitude": 10.0, "longitude": 20.0}
	if amenityIDs != nil {
		body["associated_amenities"] = amenityIDs
	}
	w := s.do(http.MethodPost, "/api/v1/places/", token, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var view facade.PlaceView
	s.decode(w, &view)
	return view
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServer(t)
	s.register("ada@example.com")

	w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"first_name": "Ada", "last_name": "Again", "email": "ADA@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"first_name": "Bad", "last_name": "Email", "email": "not-an-email", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ada@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/users/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newServer(t)
	_, token := s.register("ada@example.com")

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/auth/logout", token, nil).Code)
	w := s.do(http.MethodPost, "/api/v1/places/", token, gin.H{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	s := newServer(t)
	adaID, ada := s.register("ada@example.com")
	bobID, _ := s.register("bob@example.com")
	admin := s.admin()

	w := s.do(http.MethodPost, "/api/v1/users/", ada, gin.H{
		"first_name": "New", "last_name": "User", "email": "new@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusForbidden, w.Code, "only admins create users here")

	w = s.do(http.MethodPost, "/api/v1/users/", admin, gin.H{
		"first_name": "New", "last_name": "Admin", "email": "new@example.com", "password": "pw", "is_admin": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.User
	s.decode(w, &created)
	assert.True(t, created.IsAdmin)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPut, "/api/v1/users/"+bobID, ada, gin.H{"first_name": "X"}).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPut, "/api/v1/users/"+adaID, ada, gin.H{"email": "x@example.com"}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, "/api/v1/users/missing", ada, gin.H{"first_name": "X"}).Code)

	w = s.do(http.MethodPut, "/api/v1/users/"+adaID, ada, gin.H{"first_name": "Augusta"})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/users/"+adaID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Augusta")

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/users/missing", "", nil).Code)
}

func TestAdminListUsers(t *testing.T) {
	s := newServer(t)
	_, ada := s.register("ada@example.com")
	s.register("bob@example.com")
	admin := s.admin()

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/admin/users", ada, nil).Code)

	w := s.do(http.MethodGet, "/api/v1/admin/users?page=2&page_size=2", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Users      []api.UserAdminResponse `json:"users"`
		Page       int                     `json:"page"`
		Total      int64                   `json:"total"`
		TotalPages int                     `json:"total_pages"`
	}
	s.decode(w, &page)
	assert.Len(t, page.Users, 1)
	assert.Equal(t, 2, page.Page)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestPlaceLifecycle(t *testing.T) {
	s := newServer(t)
	_, owner := s.register("owner@example.com")
	_, guest := s.register("guest@example.com")
	admin := s.admin()

	w := s.do(http.MethodGet, "/api/v1/places/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "empty listing is reported as not found")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/places/", "", gin.H{"title": "x"}).Code)
	w = s.do(http.MethodPost, "/api/v1/places/", owner, gin.H{"title": "x", "description": "", "price": -5, "latitude": 0, "longitude": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/amenities/", admin, gin.H{"name": "Wi-Fi"})
	require.Equal(t, http.StatusCreated, w.Code)
	var wifi facade.AmenityView
	s.decode(w, &wifi)

	place := s.createPlace(owner, 120, wifi.ID)
	assert.Equal(t, []string{wifi.ID}, place.AmenityIDs())

	w = s.do(http.MethodGet, "/api/v1/places/"+place.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got facade.PlaceView
	s.decode(w, &got)
	assert.Equal(t, place.ID, got.ID)
	assert.Equal(t, 120.0, got.Price)

	w = s.do(http.MethodPut, "/api/v1/places/"+place.ID, guest, gin.H{"title": "Mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/api/v1/places/"+place.ID, admin, gin.H{"title": "Moderated"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Moderated")

	w = s.do(http.MethodPut, "/api/v1/places/admin/"+place.ID, owner, gin.H{"title": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPut, "/api/v1/places/admin/"+place.ID, admin, gin.H{"price": 99.5})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/places/"+place.ID+"/amenities", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wi-Fi")

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/places/missing", owner, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/v1/places/"+place.ID, guest, nil).Code)
	w = s.do(http.MethodDelete, "/api/v1/places/"+place.ID, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Place deleted successfully")
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/places/"+place.ID, "", nil).Code)
}

func TestPlaceFilters(t *testing.T) {
	s := newServer(t)
	_, owner := s.register("owner@example.com")
	cheap := s.createPlace(owner, 40)
	s.createPlace(owner, 400)

	w := s.do(http.MethodGet, "/api/v1/places/?max_price=100", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []facade.PlaceView
	s.decode(w, &views)
	require.Len(t, views, 1)
	assert.Equal(t, cheap.ID, views[0].ID)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/places/?min_price=abc", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/places/?min_price=50&max_price=10", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/places/?owner_id=nobody", "", nil).Code)
}

func TestAddPlaceAmenities(t *testing.T) {
	s := newServer(t)
	_, owner := s.register("owner@example.com")
	admin := s.admin()
	place := s.createPlace(owner, 10)

	w := s.do(http.MethodPost, "/api/v1/amenities/", owner, gin.H{"name": "Pool"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPost, "/api/v1/amenities/", admin, gin.H{"name": "Pool"})
	require.Equal(t, http.StatusCreated, w.Code)
	var pool facade.AmenityView
	s.decode(w, &pool)

	body := gin.H{"amenities_ids": []string{pool.ID}}
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/places/"+place.ID+"/amenities", owner, body).Code)
	w = s.do(http.MethodPost, "/api/v1/places/"+place.ID+"/amenities", owner, body)
	require.Equal(t, http.StatusOK, w.Code, "adding twice is harmless")
	var view facade.PlaceView
	s.decode(w, &view)
	assert.Equal(t, []string{pool.ID}, view.AmenityIDs())

	w = s.do(http.MethodPost, "/api/v1/places/"+place.ID+"/amenities", owner, gin.H{"amenities_ids": []string{"nope"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/v1/amenities/"+pool.ID, admin, gin.H{"name": "Heated pool"})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/amenities/"+pool.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Heated pool")
	assert.Contains(t, w.Body.String(), place.ID)
}

func TestReviews(t *testing.T) {
	s := newServer(t)
	_, owner := s.register("owner@example.com")
	guestID, guest := s.register("guest@example.com")
	place := s.createPlace(owner, 10)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/reviews/", "", nil).Code)

	w := s.do(http.MethodPost, "/api/v1/reviews/", owner, gin.H{"text": "mine", "rating": 5, "place_id": place.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code, "owners cannot review their own place")

	w = s.do(http.MethodPost, "/api/v1/reviews/", guest, gin.H{"text": "too good", "rating": 6, "place_id": place.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/reviews/", guest, gin.H{"text": "x", "rating": 3, "place_id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/v1/places/"+place.ID+"/reviews", guest, gin.H{"text": "Lovely", "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var review domain.Review
	s.decode(w, &review)
	assert.Equal(t, guestID, review.UserID)
	assert.Equal(t, place.ID, review.PlaceID)

	w = s.do(http.MethodPost, "/api/v1/reviews/", guest, gin.H{"text": "Again", "rating": 4, "place_id": place.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/v1/places/"+place.ID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []domain.Review
	s.decode(w, &reviews)
	assert.Len(t, reviews, 1)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPut, "/api/v1/reviews/"+review.ID, owner, gin.H{"rating": 1}).Code)
	w = s.do(http.MethodPut, "/api/v1/reviews/"+review.ID, guest, gin.H{"rating": 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":4`)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/v1/reviews/"+review.ID, owner, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/v1/reviews/"+review.ID, guest, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/reviews/"+review.ID, "", nil).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)

	w = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/healthz"`)
}
