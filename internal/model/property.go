package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property represents a property listing document in the properties
// collection. All fields are required at creation.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Location    string             `bson:"location" json:"location"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
}
