package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/citynights/server/internal/auth"
	"github.com/citynights/server/internal/config"
	"github.com/citynights/server/internal/domain/cityconfig"
	"github.com/citynights/server/internal/domain/users"
	"github.com/citynights/server/internal/domain/venues"
)

const testCityYAML = `
capacityBounds: [0, 50, 100, 200, 500]
cities:
  - country: NL
    city: Amsterdam
    currency: EUR
    cokePriceBounds: [0, 2, 2.5, 3]
    beerPriceBounds: [0, 2.5, 3, 4]
    entranceFeeBounds: [0, 5, 10, 20]
`

type memoryVenueRepo struct {
	docs map[string]map[string]any
}

func newMemoryVenueRepo() *memoryVenueRepo {
	return &memoryVenueRepo{docs: map[string]map[string]any{}}
}

func (m *memoryVenueRepo) Create(_ context.Context, id string, doc map[string]any) (*venues.Stored, error) {
	m.docs[id] = doc
	return &venues.Stored{ID: id, Doc: doc, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (m *memoryVenueRepo) GetByID(_ context.Context, id string) (*venues.Stored, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, venues.ErrNotFound
	}
	return &venues.Stored{ID: id, Doc: doc}, nil
}

func (m *memoryVenueRepo) List(_ context.Context, _ venues.Filters, _ venues.Pagination) (venues.ListResult, error) {
	result := venues.ListResult{}
	for id, doc := range m.docs {
		result.Venues = append(result.Venues, venues.Stored{ID: id, Doc: doc})
	}
	return result, nil
}

func (m *memoryVenueRepo) Update(_ context.Context, id string, partial map[string]any) (*venues.Stored, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, venues.ErrNotFound
	}
	for key, value := range partial {
		doc[key] = value
	}
	return &venues.Stored{ID: id, Doc: doc}, nil
}

func (m *memoryVenueRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return venues.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

type memoryUserRepo struct {
	byUsername map[string]*users.User
}

func (m *memoryUserRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) Create(_ context.Context, user *users.User) error {
	m.byUsername[user.Username] = user
	return nil
}

func testRouter(t *testing.T) (http.Handler, *auth.JWTManager) {
	t.Helper()

	cities, err := cityconfig.Load([]byte(testCityYAML))
	require.NoError(t, err)

	manager := auth.NewJWTManager("test-secret", time.Hour, "citynights")
	venueService := venues.NewService(newMemoryVenueRepo(), venues.NewCodec(cities))
	userService := users.NewService(&memoryUserRepo{byUsername: map[string]*users.User{}}, manager)

	cfg := config.Config{Environment: "test"}
	router := NewRouter(cfg, zerolog.Nop(), Deps{
		Venues: venueService,
		Users:  userService,
		JWT:    manager,
	})
	return router, manager
}

func bearer(t *testing.T, manager *auth.JWTManager, role auth.Role) string {
	t.Helper()
	token, err := manager.Generate("user-1", string(role), "")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouterHealthz(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
}

func TestRouterVenuesRequireAuth(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues", nil)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRouterAppTokenCanRead(t *testing.T) {
	router, manager := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues", nil)
	req.Header.Set("Authorization", bearer(t, manager, auth.RoleApp))
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
}

func TestRouterAppTokenCannotWrite(t *testing.T) {
	router, manager := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/venues", strings.NewReader(`{"name":"Paradiso"}`))
	req.Header.Set("Authorization", bearer(t, manager, auth.RoleApp))
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusForbidden, res.Code)
}

func TestRouterEditorCreatesVenue(t *testing.T) {
	router, manager := testRouter(t)

	body := `{
		"name": "Paradiso",
		"location": {"country": "NL", "city": "Amsterdam"},
		"prices": {"beer": 3.5}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/venues", strings.NewReader(body))
	req.Header.Set("Authorization", bearer(t, manager, auth.RoleEditor))
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusCreated, res.Code)

	var created map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	require.NotEmpty(t, created["id"])
	require.Equal(t, "Paradiso", created["name"])
	require.NotContains(t, created, "queryText")
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router, manager := testRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/venues", nil)
	req.Header.Set("Authorization", bearer(t, manager, auth.RoleAdmin))
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusMethodNotAllowed, res.Code)
	require.Equal(t, "GET, POST", res.Header().Get("Allow"))
}

func TestRouterLoginRejectsUnknownUser(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"nobody","password":"x"}`))
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}
