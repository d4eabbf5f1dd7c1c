package users

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookdata-api/internal/pkg/pagination"
	"bookdata-api/pkg/apperror"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("users")

	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "index", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "registered", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})

	return &Repository{collection: collection}
}

// Create inserts the user; the unique index on the natural key turns a
// collision into a typed conflict.
func (r *Repository) Create(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict(fmt.Sprintf("user with the index %d already exists!", user.Index))
		}
		return err
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// runCount executes a pipeline ending in a $count stage with the field name
// "count". An empty result decodes to zero.
func (r *Repository) runCount(ctx context.Context, pipeline mongo.Pipeline) (int64, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Count, nil
}

func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	return r.runCount(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$count", Value: "count"}},
	})
}

// AverageAge computes the mean age over all users. Zero with no users.
func (r *Repository) AverageAge(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"avgAge": bson.M{"$avg": "$age"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		AvgAge float64 `bson:"avgAge"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].AvgAge, nil
}

func (r *Repository) TopFavoriteFruits(ctx context.Context, limit int) ([]FruitCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         "$favoriteFruit",
			"totalFruits": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"totalFruits": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var fruits []FruitCount
	if err := cursor.All(ctx, &fruits); err != nil {
		return nil, err
	}

	if fruits == nil {
		fruits = []FruitCount{}
	}
	return fruits, nil
}

func (r *Repository) GenderCounts(ctx context.Context) ([]GenderCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$gender",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []GenderCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// TopCountry finds the country with the most registered users.
func (r *Repository) TopCountry(ctx context.Context) ([]CountryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":            "$company.location.country",
			"CountriesCount": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"CountriesCount": -1}}},
		{{Key: "$limit", Value: 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var countries []CountryCount
	if err := cursor.All(ctx, &countries); err != nil {
		return nil, err
	}

	if countries == nil {
		countries = []CountryCount{}
	}
	return countries, nil
}

func (r *Repository) UniqueEyeColors(ctx context.Context) ([]EyeColor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$eyeColor"}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var colors []EyeColor
	if err := cursor.All(ctx, &colors); err != nil {
		return nil, err
	}

	if colors == nil {
		colors = []EyeColor{}
	}
	return colors, nil
}

// AverageTagCount computes the mean number of tags per user. Left
// fractional deliberately, unlike the floored average age.
func (r *Repository) AverageTagCount(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"numberOfTags": bson.M{
				"$size": bson.M{"$ifNull": []interface{}{"$tags", []interface{}{}}},
			},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"avgTagsPerUser": bson.M{"$avg": "$numberOfTags"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		AvgTagsPerUser float64 `bson:"avgTagsPerUser"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].AvgTagsPerUser, nil
}

// CountByTag counts users carrying the tag anywhere in their tags array.
func (r *Repository) CountByTag(ctx context.Context, tag string) (int64, error) {
	return r.runCount(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tags": tag}}},
		{{Key: "$count", Value: "count"}},
	})
}

// InactiveWithTag projects name and age of inactive users carrying the tag.
func (r *Repository) InactiveWithTag(ctx context.Context, tag string) ([]NameAge, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"isActive": false,
			"tags":     tag,
		}}},
		{{Key: "$project", Value: bson.M{
			"name": 1,
			"age":  1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []NameAge
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	if results == nil {
		results = []NameAge{}
	}
	return results, nil
}

// CountPhonePrefix counts users whose company phone matches the prefix
// pattern. Matches string-stored phones only, as in the source system.
func (r *Repository) CountPhonePrefix(ctx context.Context, pattern string) (int64, error) {
	return r.runCount(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"company.phone": primitive.Regex{Pattern: pattern},
		}}},
		{{Key: "$count", Value: "count"}},
	})
}

// Paginate cuts one page of users, newest first, and reports the total in
// the same aggregation via $facet.
func (r *Repository) Paginate(ctx context.Context, params pagination.Params) ([]User, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$facet", Value: bson.M{
			"docs": []bson.M{
				{"$skip": params.Skip()},
				{"$limit": int64(params.Limit)},
			},
			"totalCount": []bson.M{
				{"$count": "count"},
			},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Docs       []User `bson:"docs"`
		TotalCount []struct {
			Count int64 `bson:"count"`
		} `bson:"totalCount"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}

	if len(results) == 0 {
		return []User{}, 0, nil
	}

	docs := results[0].Docs
	if docs == nil {
		docs = []User{}
	}

	var total int64
	if len(results[0].TotalCount) > 0 {
		total = results[0].TotalCount[0].Count
	}

	return docs, total, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	if users == nil {
		users = []User{}
	}
	return users, nil
}

// FindPage cuts one page with find skip/limit options. Same paginator
// contract as Paginate, different execution path.
func (r *Repository) FindPage(ctx context.Context, params pagination.Params) ([]User, error) {
	opts := options.Find().
		SetSkip(params.Skip()).
		SetLimit(int64(params.Limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	if users == nil {
		users = []User{}
	}
	return users, nil
}

// MostRecent returns the latest registration, or nil with no users.
func (r *Repository) MostRecent(ctx context.Context) (*RecentUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"registered": -1}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$project", Value: bson.M{
			"name":          1,
			"registered":    1,
			"favoriteFruit": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []RecentUser
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// CategorizeByFruit buckets user names under their favourite fruit.
func (r *Repository) CategorizeByFruit(ctx context.Context) ([]FruitUsers, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$favoriteFruit",
			"users": bson.M{"$push": "$name"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []FruitUsers
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	if buckets == nil {
		buckets = []FruitUsers{}
	}
	return buckets, nil
}

// CountSecondTag counts users whose second tag (zero-indexed position 1)
// equals the given value. Positional match, not membership.
func (r *Repository) CountSecondTag(ctx context.Context, tag string) (int64, error) {
	return r.runCount(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tags.1": tag}}},
		{{Key: "$count", Value: "count"}},
	})
}

// WithAllTags returns users carrying every one of the given tags.
func (r *Repository) WithAllTags(ctx context.Context, tags []string) ([]User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"tags": bson.M{"$all": tags},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	if users == nil {
		users = []User{}
	}
	return users, nil
}

// CompaniesByCountry groups companies located in the country with their
// user counts.
func (r *Repository) CompaniesByCountry(ctx context.Context, country string) ([]CompanyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"company.location.country": country,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$company.title",
			"userCount": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []CompanyCount
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}

	if companies == nil {
		companies = []CompanyCount{}
	}
	return companies, nil
}
