package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student นิสิต
type Student struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code     string             `bson:"code" json:"code"`
	Name     string             `bson:"name" json:"name"`
	EngName  string             `bson:"engName" json:"engName"`
	Major    string             `bson:"major" json:"major"`
	Enrolled bool               `bson:"enrolled" json:"enrolled"` // biometric set persisted
}

// Registration ties a student to a course they attend.
type Registration struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID primitive.ObjectID `bson:"studentId" json:"studentId"`
	CourseID  primitive.ObjectID `bson:"courseId" json:"courseId"`
}
