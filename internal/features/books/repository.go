package books

import (
	"context"
	"fmt"
	"regexp"
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
	collection := db.Collection("books")

	collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})

	return &Repository{collection: collection}
}

// Create inserts the book. The unique title index turns a natural-key
// collision into a typed conflict without a separate lookup.
func (r *Repository) Create(ctx context.Context, book *Book) error {
	book.CreatedAt = time.Now()
	book.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, book)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict(fmt.Sprintf("Book with this title %s already exists!", book.Title))
		}
		return err
	}

	book.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// TitleExists checks for an existing book with the same title,
// case-insensitively. Bulk creation pre-checks each record with this before
// touching the collection.
func (r *Repository) TitleExists(ctx context.Context, title string) (bool, error) {
	filter := bson.M{"title": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(title) + "$",
		"$options": "i",
	}}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateMany inserts the batch in order. The unique index is the backstop
// for races the sequential pre-checks cannot close.
func (r *Repository) CreateMany(ctx context.Context, batch []Book) ([]Book, error) {
	now := time.Now()
	docs := make([]interface{}, len(batch))
	for i := range batch {
		batch[i].CreatedAt = now
		batch[i].UpdatedAt = now
		docs[i] = batch[i]
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.Conflict("Book with this title already exists in the database")
		}
		return nil, err
	}

	for i, id := range result.InsertedIDs {
		batch[i].ID = id.(primitive.ObjectID)
	}
	return batch, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]Book, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var books []Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}

	if books == nil {
		books = []Book{}
	}

	return books, nil
}

// FindByIDWithAuthor resolves a book and its author in one pipeline:
// a left-outer lookup into authors, flattened to the first match.
// Returns nil when the book does not exist.
func (r *Repository) FindByIDWithAuthor(ctx context.Context, id primitive.ObjectID) (*BookWithAuthor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "authors",
			"localField":   "author_id",
			"foreignField": "_id",
			"as":           "author_details",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"author_details": bson.M{"$arrayElemAt": []interface{}{"$author_details", 0}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []BookWithAuthor
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (r *Repository) GroupByGenre(ctx context.Context) ([]GenreCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$genre",
			"totalBooks": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []GenreCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}

	if counts == nil {
		counts = []GenreCount{}
	}

	return counts, nil
}

// SetPriceQuantity stamps price and quantity on every book. Not atomic
// across documents; callers treat it as a best-effort bulk patch.
func (r *Repository) SetPriceQuantity(ctx context.Context, price, quantity float64) (int64, error) {
	result, err := r.collection.UpdateMany(ctx, bson.M{}, bson.M{
		"$set": bson.M{
			"price":     price,
			"quantity":  quantity,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// RevenueByGenre sums price x quantity per genre, ascending by total.
func (r *Repository) RevenueByGenre(ctx context.Context) ([]GenreRevenue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": "$genre",
			"totalPrice": bson.M{
				"$sum": bson.M{"$multiply": []interface{}{"$price", "$quantity"}},
			},
		}}},
		{{Key: "$sort", Value: bson.M{"totalPrice": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var revenue []GenreRevenue
	if err := cursor.All(ctx, &revenue); err != nil {
		return nil, err
	}

	if revenue == nil {
		revenue = []GenreRevenue{}
	}

	return revenue, nil
}
