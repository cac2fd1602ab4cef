package candidates

import (
	"context"
	"time"

	DB "Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListAll returns every persisted candidate record. This is the fetch
// source behind the matcher population cache.
func ListAll(ctx context.Context) ([]models.CandidateRecord, error) {
	cursor, err := DB.CandidateCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.CandidateRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// InsertSet persists a completed enrollment's candidate set in one write.
func InsertSet(ctx context.Context, records []models.CandidateRecord) error {
	docs := make([]interface{}, 0, len(records))
	now := time.Now()
	for i := range records {
		records[i].ID = primitive.NewObjectID()
		records[i].CreatedAt = now
		docs = append(docs, records[i])
	}
	_, err := DB.CandidateCollection.InsertMany(ctx, docs)
	return err
}

// DeleteByOwner removes a student's whole candidate set. Re-enrollment
// supersedes only through this explicit deletion.
func DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := DB.CandidateCollection.DeleteMany(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByOwner reports how many samples a student has persisted.
func CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	return DB.CandidateCollection.CountDocuments(ctx, bson.M{"ownerId": ownerID})
}
