package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	Id              primitive.ObjectID `json:"_id" bson:"_id"`
	Name            string             `json:"name" bson:"name"`
	StartDate       time.Time          `json:"startDate" bson:"startDate"`
	Time            string             `json:"time" bson:"time"`
	Pax             uint               `json:"pax" bson:"pax"`
	FoodType        string             `json:"foodType" bson:"foodType"`
	RatePlan        string             `json:"ratePlan" bson:"ratePlan"`
	Hall            string             `json:"hall" bson:"hall"`
	CustomerRef     string             `json:"customerRef" bson:"customerRef"`
	CategorizedMenu CategorizedMenu    `json:"categorizedMenu,omitempty" bson:"categorizedMenu,omitempty"`
	MenuItems       MenuItems          `json:"menuItems" bson:"menuItems"`
}

// Ref is the customer reference, or the booking id when the booking has none.
func (b *Booking) Ref() string {
	if b.CustomerRef != "" {
		return b.CustomerRef
	}
	return b.Id.Hex()
}
