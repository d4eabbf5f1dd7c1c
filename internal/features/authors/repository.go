package authors

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookdata-api/pkg/apperror"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("authors")

	// Case-insensitive unique index on the natural key. Creation relies on
	// this instead of a separate check-then-insert round trip.
	collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})

	return &Repository{collection: collection}
}

// Create inserts the author. A natural-key collision surfaces as a typed
// conflict from this one operation.
func (r *Repository) Create(ctx context.Context, author *Author) error {
	author.CreatedAt = time.Now()
	author.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, author)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict(fmt.Sprintf("Author with this name %s already exists!", author.Name))
		}
		return err
	}

	author.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) FindAll(ctx context.Context) ([]Author, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var authors []Author
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, err
	}

	if authors == nil {
		authors = []Author{}
	}

	return authors, nil
}

// Exists reports whether an author with the given id is present. Used by
// book creation to validate the author reference at write time.
func (r *Repository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
