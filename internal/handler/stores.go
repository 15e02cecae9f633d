package handler

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"propertyhub-api/internal/model"
)

// UserStore is the persistence surface the auth handlers need. Satisfied by
// repository.UserRepository; tests substitute in-memory fakes.
type UserStore interface {
	Insert(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

// PropertyStore is the persistence surface the property handlers need.
// Satisfied by repository.PropertyRepository.
type PropertyStore interface {
	Insert(ctx context.Context, property *model.Property) error
	FindAll(ctx context.Context) ([]model.Property, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Property, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Property, error)
	Update(ctx context.Context, id primitive.ObjectID, in *model.PropertyInput) (*model.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Property, error)
}
