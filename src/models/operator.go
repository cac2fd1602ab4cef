package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operator เจ้าหน้าที่คุมสถานีเช็คชื่อ
type Operator struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Name     string             `bson:"name" json:"name"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"` // admin | operator
}
