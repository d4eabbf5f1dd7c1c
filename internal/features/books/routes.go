package books

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database, authors AuthorChecker) {
	repo := NewRepository(db)
	handler := NewHandler(repo, authors)

	group := router.Group("/book")
	{
		group.POST("/create-book", handler.Create)
		group.POST("/create-multiple-books", handler.CreateMultiple)
		group.GET("/allbooks", handler.List)
		group.GET("/findbook/:id", handler.Get)
		group.GET("/group-books", handler.GroupByGenre)
		group.POST("/add-new-fields", handler.AddNewFields)
		group.GET("/group-with-price-quantity", handler.RevenueByGenre)
	}
}
