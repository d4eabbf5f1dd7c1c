package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"bookdata-api/internal/pkg/pagination"
	"bookdata-api/pkg/apperror"
)

type stubStore struct {
	createErr      error
	createCalls    int
	activeCount    int64
	avgAge         float64
	fruits         []FruitCount
	genders        []GenderCount
	countries      []CountryCount
	eyeColors      []EyeColor
	avgTags        float64
	tagCount       int64
	lastTag        string
	inactive       []NameAge
	phoneCount     int64
	users          []User
	total          int64
	lastParams     pagination.Params
	recent         *RecentUser
	fruitBuckets   []FruitUsers
	secondTagCount int64
	lastSecondTag  string
	allTagUsers    []User
	companies      []CompanyCount
}

func (s *stubStore) Create(ctx context.Context, user *User) error {
	s.createCalls++
	return s.createErr
}
func (s *stubStore) CountActive(ctx context.Context) (int64, error) { return s.activeCount, nil }
func (s *stubStore) AverageAge(ctx context.Context) (float64, error) {
	return s.avgAge, nil
}
func (s *stubStore) TopFavoriteFruits(ctx context.Context, limit int) ([]FruitCount, error) {
	if limit < len(s.fruits) {
		return s.fruits[:limit], nil
	}
	return s.fruits, nil
}
func (s *stubStore) GenderCounts(ctx context.Context) ([]GenderCount, error) {
	return s.genders, nil
}
func (s *stubStore) TopCountry(ctx context.Context) ([]CountryCount, error) {
	return s.countries, nil
}
func (s *stubStore) UniqueEyeColors(ctx context.Context) ([]EyeColor, error) {
	return s.eyeColors, nil
}
func (s *stubStore) AverageTagCount(ctx context.Context) (float64, error) { return s.avgTags, nil }
func (s *stubStore) CountByTag(ctx context.Context, tag string) (int64, error) {
	s.lastTag = tag
	return s.tagCount, nil
}
func (s *stubStore) InactiveWithTag(ctx context.Context, tag string) ([]NameAge, error) {
	return s.inactive, nil
}
func (s *stubStore) CountPhonePrefix(ctx context.Context, pattern string) (int64, error) {
	return s.phoneCount, nil
}
func (s *stubStore) Paginate(ctx context.Context, params pagination.Params) ([]User, int64, error) {
	s.lastParams = params
	return s.users, s.total, nil
}
func (s *stubStore) FindAll(ctx context.Context) ([]User, error) { return s.users, nil }
func (s *stubStore) FindPage(ctx context.Context, params pagination.Params) ([]User, error) {
	s.lastParams = params
	return s.users, nil
}
func (s *stubStore) MostRecent(ctx context.Context) (*RecentUser, error) { return s.recent, nil }
func (s *stubStore) CategorizeByFruit(ctx context.Context) ([]FruitUsers, error) {
	return s.fruitBuckets, nil
}
func (s *stubStore) CountSecondTag(ctx context.Context, tag string) (int64, error) {
	s.lastSecondTag = tag
	return s.secondTagCount, nil
}
func (s *stubStore) WithAllTags(ctx context.Context, tags []string) ([]User, error) {
	return s.allTagUsers, nil
}
func (s *stubStore) CompaniesByCountry(ctx context.Context, country string) ([]CompanyCount, error) {
	return s.companies, nil
}

func setupRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(store)
	group := router.Group("/user")
	group.POST("/create-user", handler.Create)
	group.GET("/active-users", handler.ActiveUsers)
	group.GET("/avg-age-users", handler.AverageAge)
	group.GET("/get-top5-favourite-fruits", handler.TopFavoriteFruits)
	group.GET("/get-total-males-and-females", handler.TotalMalesAndFemales)
	group.GET("/all-users", handler.PaginatedUsers)
	group.GET("/all-users-skip-limit", handler.SkipLimitUsers)
	group.GET("/users-with-ad-as-second-tag", handler.UsersWithAdAsSecondTag)
	group.GET("/users-with-enim-tag", handler.UsersWithEnimTag)
	group.GET("/most-recently-registered", handler.MostRecentlyRegistered)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func validPayload() gin.H {
	return gin.H{
		"index":         42,
		"name":          "Aurelia Gonzales",
		"isActive":      true,
		"registered":    time.Date(2020, 4, 14, 0, 0, 0, 0, time.UTC),
		"age":           27,
		"gender":        "female",
		"eyeColor":      "green",
		"favoriteFruit": "banana",
		"title":         "YURTURE",
		"email":         "aureliagonzales@yurture.com",
		"phone":         9404802557,
		"country":       "USA",
		"address":       "694 Hewes Street",
		"tags":          []string{"enim", "id"},
	}
}

func TestCreateUser(t *testing.T) {
	store := &stubStore{}
	router := setupRouter(store)

	w := doJSON(t, router, http.MethodPost, "/user/create-user", validPayload())

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, store.createCalls)
	body := decode(t, w)
	require.Contains(t, body, "newUser")
	newUser := body["newUser"].(map[string]any)
	company := newUser["company"].(map[string]any)
	require.Equal(t, "YURTURE", company["title"])
	require.Equal(t, "USA", company["location"].(map[string]any)["country"])
}

func TestCreateUserConflict(t *testing.T) {
	store := &stubStore{createErr: apperror.Conflict("user with the index 42 already exists!")}
	router := setupRouter(store)

	w := doJSON(t, router, http.MethodPost, "/user/create-user", validPayload())
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUserTypeMismatches(t *testing.T) {
	store := &stubStore{}
	router := setupRouter(store)

	for field, value := range map[string]any{
		"index":    "forty-two",
		"age":      "old",
		"phone":    "+1 (940) 480-2557",
		"isActive": "yes",
	} {
		payload := validPayload()
		payload[field] = value
		w := doJSON(t, router, http.MethodPost, "/user/create-user", payload)
		require.Equalf(t, http.StatusBadRequest, w.Code, "field %s", field)
	}
	require.Equal(t, 0, store.createCalls)
}

func TestCreateUserEmptyTags(t *testing.T) {
	store := &stubStore{}
	router := setupRouter(store)

	payload := validPayload()
	payload["tags"] = []string{}
	w := doJSON(t, router, http.MethodPost, "/user/create-user", payload)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, store.createCalls)
}

func TestActiveUsersZeroIsSuccess(t *testing.T) {
	router := setupRouter(&stubStore{activeCount: 0})

	w := doJSON(t, router, http.MethodGet, "/user/active-users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, float64(0), body["activeUsers"])
}

func TestAverageAgeIsFloored(t *testing.T) {
	router := setupRouter(&stubStore{avgAge: 30.0})
	w := doJSON(t, router, http.MethodGet, "/user/avg-age-users", nil)
	body := decode(t, w)
	require.Equal(t, float64(30), body["averageAge"])

	router = setupRouter(&stubStore{avgAge: 31.75})
	w = doJSON(t, router, http.MethodGet, "/user/avg-age-users", nil)
	body = decode(t, w)
	require.Equal(t, float64(31), body["averageAge"])
}

func TestTopFavoriteFruitsLimitsToFive(t *testing.T) {
	fruits := []FruitCount{
		{Fruit: "banana", TotalFruits: 10},
		{Fruit: "apple", TotalFruits: 8},
		{Fruit: "strawberry", TotalFruits: 6},
		{Fruit: "kiwi", TotalFruits: 4},
		{Fruit: "mango", TotalFruits: 3},
		{Fruit: "pear", TotalFruits: 1},
	}
	router := setupRouter(&stubStore{fruits: fruits})

	w := doJSON(t, router, http.MethodGet, "/user/get-top5-favourite-fruits", nil)
	body := decode(t, w)
	require.Len(t, body["favoriteFruits"], 5)
}

func TestTotalMalesAndFemales(t *testing.T) {
	router := setupRouter(&stubStore{genders: []GenderCount{
		{Gender: "female", Count: 12},
		{Gender: "male", Count: 9},
		{Gender: "other", Count: 2},
	}})

	w := doJSON(t, router, http.MethodGet, "/user/get-total-males-and-females", nil)
	body := decode(t, w)
	require.Equal(t, float64(9), body["males"])
	require.Equal(t, float64(12), body["females"])
}

func TestPaginatedUsersDefaults(t *testing.T) {
	store := &stubStore{users: []User{}, total: 25}
	router := setupRouter(store)

	w := doJSON(t, router, http.MethodGet, "/user/all-users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, pagination.Params{Page: 1, Limit: 10}, store.lastParams)

	body := decode(t, w)
	require.Equal(t, float64(3), body["totalPages"])
}

func TestPaginatedUsersIdempotentRead(t *testing.T) {
	store := &stubStore{users: []User{{Name: "a"}, {Name: "b"}}, total: 2}
	router := setupRouter(store)

	first := doJSON(t, router, http.MethodGet, "/user/all-users?pageNo=1&limit=10", nil)
	second := doJSON(t, router, http.MethodGet, "/user/all-users?pageNo=1&limit=10", nil)

	require.Equal(t, first.Body.String(), second.Body.String())
}

func TestSkipLimitUsersSharesPaginator(t *testing.T) {
	store := &stubStore{users: []User{}}
	router := setupRouter(store)

	doJSON(t, router, http.MethodGet, "/user/all-users-skip-limit?pageNo=3&limit=5", nil)
	require.Equal(t, pagination.Params{Page: 3, Limit: 5}, store.lastParams)
}

func TestUsersWithAdAsSecondTag(t *testing.T) {
	store := &stubStore{secondTagCount: 4}
	router := setupRouter(store)

	w := doJSON(t, router, http.MethodGet, "/user/users-with-ad-as-second-tag", nil)
	body := decode(t, w)

	// Positional match on tags[1], not membership anywhere in the array.
	require.Equal(t, "ad", store.lastSecondTag)
	require.Equal(t, float64(4), body["usersWithAdSecondTag"])
}

func TestUsersWithEnimTag(t *testing.T) {
	store := &stubStore{tagCount: 7}
	router := setupRouter(store)

	w := doJSON(t, router, http.MethodGet, "/user/users-with-enim-tag", nil)
	body := decode(t, w)
	require.Equal(t, "enim", store.lastTag)
	require.Equal(t, float64(7), body["usersWithEnimTag"])
}

func TestMostRecentlyRegistered(t *testing.T) {
	recent := &RecentUser{
		Name:          "Aurelia Gonzales",
		Registered:    time.Date(2020, 4, 14, 0, 0, 0, 0, time.UTC),
		FavoriteFruit: "banana",
	}
	router := setupRouter(&stubStore{recent: recent})

	w := doJSON(t, router, http.MethodGet, "/user/most-recently-registered", nil)
	body := decode(t, w)
	user := body["mostRecentUser"].(map[string]any)
	require.Equal(t, "Aurelia Gonzales", user["name"])
}
