package users

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database) {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	group := router.Group("/user")
	{
		group.POST("/create-user", handler.Create)
		group.GET("/active-users", handler.ActiveUsers)
		group.GET("/avg-age-users", handler.AverageAge)
		group.GET("/get-top5-favourite-fruits", handler.TopFavoriteFruits)
		group.GET("/get-total-males-and-females", handler.TotalMalesAndFemales)
		group.GET("/get-country-with-highest-users", handler.CountryWithHighestUsers)
		group.GET("/get-unique-eye-colors", handler.UniqueEyeColors)
		group.GET("/avg-no-of-tags-per-user", handler.AverageTagsPerUser)
		group.GET("/users-with-enim-tag", handler.UsersWithEnimTag)
		group.GET("/users-inactive-with-velit-tag", handler.InactiveUsersWithVelitTag)
		group.GET("/users-phone-format", handler.UsersWithPhoneFormat)
		group.GET("/all-users", handler.PaginatedUsers)
		group.GET("/get-all-users", handler.AllUsers)
		group.GET("/all-users-skip-limit", handler.SkipLimitUsers)
		group.GET("/most-recently-registered", handler.MostRecentlyRegistered)
		group.GET("/categorize-user-by-fruit", handler.CategorizeByFruit)
		group.GET("/users-with-ad-as-second-tag", handler.UsersWithAdAsSecondTag)
		group.GET("/users-with-enim-id-tag", handler.UsersWithEnimAndIdTags)
		group.GET("/companes-in-usa-with-user-count", handler.CompaniesInUSA)
	}
}
