package handler

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"propertyhub-api/internal/model"
	"propertyhub-api/internal/repository"
)

// In-memory stores implementing the handler store interfaces. They mirror the
// repository behavior the handlers rely on: sentinel errors, unique emails,
// ID assignment on insert.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*model.User)}
}

func (s *fakeUserStore) Insert(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := model.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == normalized {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *fakeUserStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "firstName":
			u.FirstName = value.(string)
		case "lastName":
			u.LastName = value.(string)
		case "phone":
			u.Phone = value.(string)
		case "avatar":
			u.Avatar = value.(string)
		case "userType":
			u.UserType = value.(string)
		case "address":
			u.Address = value.(model.Address)
		case "preferences":
			u.Preferences = value.(model.Preferences)
		case "updatedAt":
			u.UpdatedAt = value.(time.Time)
		}
	}
	clone := *u
	return &clone, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

type fakePropertyStore struct {
	mu         sync.Mutex
	properties map[primitive.ObjectID]*model.Property
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: make(map[primitive.ObjectID]*model.Property)}
}

func (s *fakePropertyStore) Insert(_ context.Context, property *model.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	property.ID = primitive.NewObjectID()
	clone := *property
	s.properties[property.ID] = &clone
	return nil
}

func (s *fakePropertyStore) FindAll(_ context.Context) ([]model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Property{}
	for _, p := range s.properties {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakePropertyStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *fakePropertyStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Property{}
	for _, id := range ids {
		if p, ok := s.properties[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePropertyStore) Update(_ context.Context, id primitive.ObjectID, in *model.PropertyInput) (*model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Location = in.Location
	p.ImageURL = in.ImageURL
	clone := *p
	return &clone, nil
}

func (s *fakePropertyStore) Delete(_ context.Context, id primitive.ObjectID) (*model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.properties, id)
	return p, nil
}
