package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"propertyhub-api/internal/model"
)

// PropertyRepository persists property documents in the properties collection.
type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection("properties")}
}

// Insert stores a new property document and fills in its generated ID.
func (r *PropertyRepository) Insert(ctx context.Context, property *model.Property) error {
	res, err := r.coll.InsertOne(ctx, property)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		property.ID = id
	}
	return nil
}

// FindAll returns every property document.
func (r *PropertyRepository) FindAll(ctx context.Context) ([]model.Property, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []model.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// FindByID looks a property up by its document ID.
func (r *PropertyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Property, error) {
	var property model.Property
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// FindByIDs returns the property documents matching the given IDs. Missing
// references are skipped rather than reported.
func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Property, error) {
	if len(ids) == 0 {
		return []model.Property{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []model.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// Update replaces the property's fields and returns the updated document.
func (r *PropertyRepository) Update(ctx context.Context, id primitive.ObjectID, in *model.PropertyInput) (*model.Property, error) {
	update := bson.M{"$set": bson.M{
		"title":       in.Title,
		"description": in.Description,
		"price":       in.Price,
		"location":    in.Location,
		"imageUrl":    in.ImageURL,
	}}

	var property model.Property
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// Delete removes the property and returns the deleted document.
func (r *PropertyRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Property, error) {
	var property model.Property
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}
