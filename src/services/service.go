package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func operatorObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid operator ID")
	}
	return objID, nil
}
