package books

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a catalogue entry. Title is a natural key, unique
// case-insensitively. Price and Quantity are absent until the bulk
// add-new-fields operation sets them.
type Book struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Genre     string             `bson:"genre" json:"genre"`
	AuthorID  primitive.ObjectID `bson:"author_id,omitempty" json:"author_id,omitempty"`
	Price     *float64           `bson:"price,omitempty" json:"price,omitempty"`
	Quantity  *float64           `bson:"quantity,omitempty" json:"quantity,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AuthorDetails is the author document resolved by the read-time join.
type AuthorDetails struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	BirthYear int                `bson:"birth_year" json:"birth_year"`
}

// BookWithAuthor is a book with its joined author, flattened to the first
// match. AuthorDetails is nil when the reference resolves to nothing.
type BookWithAuthor struct {
	Book          `bson:",inline"`
	AuthorDetails *AuthorDetails `bson:"author_details,omitempty" json:"author_details,omitempty"`
}

// GenreCount is one bucket of the count-per-genre report.
type GenreCount struct {
	Genre      string `bson:"_id" json:"_id"`
	TotalBooks int64  `bson:"totalBooks" json:"totalBooks"`
}

// GenreRevenue is one bucket of the revenue-per-genre report
// (sum of price x quantity).
type GenreRevenue struct {
	Genre      string  `bson:"_id" json:"_id"`
	TotalPrice float64 `bson:"totalPrice" json:"totalPrice"`
}

// CreateBookRequest is the create-book body; the author reference arrives
// as the authorId query parameter.
type CreateBookRequest struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
}

// BookInput is one entry of the create-multiple-books batch.
type BookInput struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	AuthorID string `json:"authorId"`
}

// AddFieldsRequest is the add-new-fields body, applied to every book.
type AddFieldsRequest struct {
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
}
