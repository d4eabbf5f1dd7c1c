package authors

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	group := router.Group("/author")
	{
		group.POST("/create-author", handler.Create)
		group.GET("/allauthors", handler.List)
	}

	return repo
}
