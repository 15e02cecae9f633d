package database

import (
	"context"
	"fmt"

	"propertyhub-api/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the MongoDB client and the application database handle. It is
// created once at startup and closed at shutdown; handlers receive
// repositories built on top of it rather than reaching for a global.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the MongoDB connection, verifies it with a ping and
// returns the store handle.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Database returns the application database handle.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Disconnect tears down the connection. Called once on process exit.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
