package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is the nested company address.
type Location struct {
	Country string `bson:"country" json:"country"`
	Address string `bson:"address" json:"address"`
}

// Company is the nested employer document.
type Company struct {
	Title    string   `bson:"title" json:"title"`
	Email    string   `bson:"email" json:"email"`
	Phone    float64  `bson:"phone" json:"phone"`
	Location Location `bson:"location" json:"location"`
}

// User is a registered user. Index is a natural key, unique across the
// collection. Tags are order-significant; positional queries rely on it.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Index         int                `bson:"index" json:"index"`
	Name          string             `bson:"name" json:"name"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	Registered    time.Time          `bson:"registered" json:"registered"`
	Age           int                `bson:"age" json:"age"`
	Gender        string             `bson:"gender" json:"gender"`
	EyeColor      string             `bson:"eyeColor" json:"eyeColor"`
	FavoriteFruit string             `bson:"favoriteFruit" json:"favoriteFruit"`
	Company       Company            `bson:"company" json:"company"`
	Tags          []string           `bson:"tags" json:"tags"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateUserRequest is the create-user payload. Company fields arrive flat,
// as in the public API, and are nested on persistence. Pointer fields make
// presence checks explicit; type mismatches fail at bind time.
type CreateUserRequest struct {
	Index         *int       `json:"index"`
	Name          string     `json:"name"`
	IsActive      *bool      `json:"isActive"`
	Registered    *time.Time `json:"registered"`
	Age           *int       `json:"age"`
	Gender        string     `json:"gender"`
	EyeColor      string     `json:"eyeColor"`
	FavoriteFruit string     `json:"favoriteFruit"`
	Title         string     `json:"title"`
	Email         string     `json:"email"`
	Phone         *float64   `json:"phone"`
	Country       string     `json:"country"`
	Address       string     `json:"address"`
	Tags          []string   `json:"tags"`
}

// FruitCount is one bucket of the favourite-fruit leaderboard.
type FruitCount struct {
	Fruit       string `bson:"_id" json:"_id"`
	TotalFruits int64  `bson:"totalFruits" json:"totalFruits"`
}

// GenderCount is one bucket of the gender report.
type GenderCount struct {
	Gender string `bson:"_id" json:"_id"`
	Count  int64  `bson:"count" json:"count"`
}

// CountryCount is one bucket of the users-per-country report.
type CountryCount struct {
	Country string `bson:"_id" json:"_id"`
	Count   int64  `bson:"CountriesCount" json:"CountriesCount"`
}

// EyeColor is one distinct eye color bucket.
type EyeColor struct {
	Color string `bson:"_id" json:"_id"`
}

// NameAge is the projection used by the inactive-with-tag report.
type NameAge struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
	Age  int                `bson:"age" json:"age"`
}

// RecentUser is the projection of the most-recently-registered query.
type RecentUser struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Registered    time.Time          `bson:"registered" json:"registered"`
	FavoriteFruit string             `bson:"favoriteFruit" json:"favoriteFruit"`
}

// FruitUsers groups user names under their favourite fruit.
type FruitUsers struct {
	Fruit string   `bson:"_id" json:"_id"`
	Users []string `bson:"users" json:"users"`
}

// CompanyCount is one bucket of the companies-per-country report.
type CompanyCount struct {
	Company   string `bson:"_id" json:"_id"`
	UserCount int64  `bson:"userCount" json:"userCount"`
}
