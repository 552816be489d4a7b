package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"banquet-admin/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore interface {
	GetUserData(ctx context.Context, userLogin string) (model.UserData, error)
}

type MongoUserStore struct {
	collection *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{collection: db.Collection(UsersCollection)}
}

func (s *MongoUserStore) GetUserData(ctx context.Context, userLogin string) (model.UserData, error) {
	var user model.UserData
	err := s.collection.FindOne(ctx, bson.D{primitive.E{Key: "login", Value: userLogin}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.UserData{}, ErrUserNotFound
	}
	if err != nil {
		return model.UserData{}, fmt.Errorf("server side problem occured while reading user data from database: %v", err)
	}
	return user, nil
}

// MemoryUserStore keeps users keyed by login. Passwords are only ever stored as bcrypt hashes.
type MemoryUserStore struct {
	users map[string]model.UserData
}

func NewMemoryUserStore(users ...model.UserData) *MemoryUserStore {
	store := &MemoryUserStore{users: make(map[string]model.UserData, len(users))}
	for _, user := range users {
		store.users[user.Login] = user
	}
	return store
}

// LoadUserStore reads users from a JSON file shaped like the users collection.
func LoadUserStore(path string) (*MemoryUserStore, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read user data: %v", err)
	}

	var users []model.UserData
	if err := json.Unmarshal(fileBytes, &users); err != nil {
		return nil, fmt.Errorf("cannot parse user data: %v", err)
	}
	return NewMemoryUserStore(users...), nil
}

func (s *MemoryUserStore) GetUserData(_ context.Context, userLogin string) (model.UserData, error) {
	user, ok := s.users[userLogin]
	if !ok {
		return model.UserData{}, ErrUserNotFound
	}
	return user, nil
}
