package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"bookdata-api/internal/features/authors"
	"bookdata-api/internal/features/books"
	"bookdata-api/internal/features/users"
)

// SetupRoutes registers every feature. The authors repository doubles as
// the books feature's AuthorChecker so book creation can validate its
// author reference at write time.
func SetupRoutes(router *gin.Engine, db *mongo.Database) {
	authorsRepo := authors.RegisterRoutes(router, db)
	books.RegisterRoutes(router, db, authorsRepo)
	users.RegisterRoutes(router, db)
}
