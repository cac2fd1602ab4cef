package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty" swaggertype:"string" example:"507f1f77bcf86cd799439011"`
	Name     string             `json:"name" bson:"name" example:"Introduction to Programming"`
	Lecturer string             `json:"lecturer" bson:"lecturer" example:"Dr. Somchai"`
	Room     string             `json:"room" bson:"room" example:"IF-3C01"`
	IsActive bool               `json:"isActive" bson:"isActive" example:"true"`
}
