package authors

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is a book author. Name is a natural key, unique case-insensitively.
type Author struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	BirthYear int                `bson:"birth_year" json:"birth_year"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateAuthorRequest is the create-author payload.
type CreateAuthorRequest struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
}
