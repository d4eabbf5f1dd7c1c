package users

import (
	"context"
	"math"

	"github.com/gin-gonic/gin"

	"bookdata-api/internal/pkg/pagination"
	"bookdata-api/internal/pkg/response"
)

// Store is the slice of the repository the handler needs.
type Store interface {
	Create(ctx context.Context, user *User) error
	CountActive(ctx context.Context) (int64, error)
	AverageAge(ctx context.Context) (float64, error)
	TopFavoriteFruits(ctx context.Context, limit int) ([]FruitCount, error)
	GenderCounts(ctx context.Context) ([]GenderCount, error)
	TopCountry(ctx context.Context) ([]CountryCount, error)
	UniqueEyeColors(ctx context.Context) ([]EyeColor, error)
	AverageTagCount(ctx context.Context) (float64, error)
	CountByTag(ctx context.Context, tag string) (int64, error)
	InactiveWithTag(ctx context.Context, tag string) ([]NameAge, error)
	CountPhonePrefix(ctx context.Context, pattern string) (int64, error)
	Paginate(ctx context.Context, params pagination.Params) ([]User, int64, error)
	FindAll(ctx context.Context) ([]User, error)
	FindPage(ctx context.Context, params pagination.Params) ([]User, error)
	MostRecent(ctx context.Context) (*RecentUser, error)
	CategorizeByFruit(ctx context.Context) ([]FruitUsers, error)
	CountSecondTag(ctx context.Context, tag string) (int64, error)
	WithAllTags(ctx context.Context, tags []string) ([]User, error)
	CompaniesByCountry(ctx context.Context, country string) ([]CompanyCount, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, 400, "Invalid request format: index, age and phone must be numbers, isActive must be a boolean")
		return
	}

	if err := ValidateCreateUser(&req); err != nil {
		response.Error(c, 400, err.Error())
		return
	}

	user := &User{
		Index:         *req.Index,
		Name:          req.Name,
		IsActive:      *req.IsActive,
		Registered:    *req.Registered,
		Age:           *req.Age,
		Gender:        req.Gender,
		EyeColor:      req.EyeColor,
		FavoriteFruit: req.FavoriteFruit,
		Company: Company{
			Title: req.Title,
			Email: req.Email,
			Phone: *req.Phone,
			Location: Location{
				Country: req.Country,
				Address: req.Address,
			},
		},
		Tags: req.Tags,
	}

	if err := h.store.Create(c.Request.Context(), user); err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, "User created successfully", gin.H{"newUser": user})
}

func (h *Handler) ActiveUsers(c *gin.Context) {
	count, err := h.store.CountActive(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Active users found successfully!", gin.H{"activeUsers": count})
}

func (h *Handler) AverageAge(c *gin.Context) {
	avg, err := h.store.AverageAge(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	// Floored deliberately; the tag-count average below stays fractional.
	response.Success(c, "Average age of all users calculated successfully!", gin.H{
		"averageAge": int(math.Floor(avg)),
	})
}

func (h *Handler) TopFavoriteFruits(c *gin.Context) {
	fruits, err := h.store.TopFavoriteFruits(c.Request.Context(), 5)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Top 5 Favourite Fruits of users fetched successfully!", gin.H{
		"favoriteFruits": fruits,
	})
}

func (h *Handler) TotalMalesAndFemales(c *gin.Context) {
	counts, err := h.store.GenderCounts(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	var males, females int64
	for _, g := range counts {
		switch g.Gender {
		case "male":
			males = g.Count
		case "female":
			females = g.Count
		}
	}

	response.Success(c, "Total number of male and female users fetched successfully!", gin.H{
		"males":   males,
		"females": females,
	})
}

func (h *Handler) CountryWithHighestUsers(c *gin.Context) {
	countries, err := h.store.TopCountry(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "The country with the highest number of registered users fetched successfully!", gin.H{
		"users": countries,
	})
}

func (h *Handler) UniqueEyeColors(c *gin.Context) {
	colors, err := h.store.UniqueEyeColors(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Unique eye colors fetched successfully!", gin.H{"uniqueColors": colors})
}

func (h *Handler) AverageTagsPerUser(c *gin.Context) {
	avg, err := h.store.AverageTagCount(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Average No of Tags Per User fetched successfully!", gin.H{
		"avgTagsPerUser": avg,
	})
}

func (h *Handler) UsersWithEnimTag(c *gin.Context) {
	count, err := h.store.CountByTag(c.Request.Context(), "enim")
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Users with enim tag fetched successfully!", gin.H{
		"usersWithEnimTag": count,
	})
}

func (h *Handler) InactiveUsersWithVelitTag(c *gin.Context) {
	results, err := h.store.InactiveWithTag(c.Request.Context(), "velit")
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Users who are inactive and have velit as a tag fetched successfully!", gin.H{
		"inactiveUsersWithVelitTag": results,
	})
}

func (h *Handler) UsersWithPhoneFormat(c *gin.Context) {
	count, err := h.store.CountPhonePrefix(c.Request.Context(), `^\+1 \(940\)`)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Users whos phone number starts with '+1 (940)' fetched successfully!", gin.H{
		"usersWithThisPhoneNoFormat": count,
	})
}

// PaginatedUsers serves /all-users: one page cut store-side inside the
// aggregation, plus the total page count.
func (h *Handler) PaginatedUsers(c *gin.Context) {
	params := pagination.FromQuery(c.Query("pageNo"), c.Query("limit"))

	docs, total, err := h.store.Paginate(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "All Users fetched successfully with pagination!", gin.H{
		"allUsers":   docs,
		"totalPages": params.TotalPages(total),
	})
}

func (h *Handler) AllUsers(c *gin.Context) {
	users, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "All Users fetched successfully!", gin.H{"allUsers": users})
}

// SkipLimitUsers serves /all-users-skip-limit: same paginator contract,
// executed as a find with skip/limit options.
func (h *Handler) SkipLimitUsers(c *gin.Context) {
	params := pagination.FromQuery(c.Query("pageNo"), c.Query("limit"))

	users, err := h.store.FindPage(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "All Users fetched successfully with pagination!", gin.H{"allUsers": users})
}

func (h *Handler) MostRecentlyRegistered(c *gin.Context) {
	user, err := h.store.MostRecent(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Most Recent User fetched successfully!", gin.H{"mostRecentUser": user})
}

func (h *Handler) CategorizeByFruit(c *gin.Context) {
	buckets, err := h.store.CategorizeByFruit(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "User categorized by fruit successfully!", gin.H{"usersByFruit": buckets})
}

func (h *Handler) UsersWithAdAsSecondTag(c *gin.Context) {
	count, err := h.store.CountSecondTag(c.Request.Context(), "ad")
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Users who have ad as the second tag in their list of tags fetched successfully!", gin.H{
		"usersWithAdSecondTag": count,
	})
}

func (h *Handler) UsersWithEnimAndIdTags(c *gin.Context) {
	users, err := h.store.WithAllTags(c.Request.Context(), []string{"enim", "id"})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Users who have enim and id tags in their list of tags fetched successfully!", gin.H{
		"usersWithEnimIdTags": users,
	})
}

func (h *Handler) CompaniesInUSA(c *gin.Context) {
	companies, err := h.store.CompaniesByCountry(c.Request.Context(), "USA")
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, "Companies in USA with user count fetched successfully!", gin.H{
		"companiesInUSA": companies,
	})
}
