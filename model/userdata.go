package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

type UserData struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Login          string             `json:"login" bson:"login,omitempty"`
	Name           string             `json:"name" bson:"name,omitempty"`
	HashedPassword string             `json:"password_hash" bson:"password_hash,omitempty"`
	Role           string             `json:"role" bson:"role,omitempty"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
}
