package students

import (
	"context"
	"errors"

	DB "Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateStudent - เพิ่มนิสิตใหม่
func CreateStudent(ctx context.Context, student *models.Student) error {
	student.ID = primitive.NewObjectID()
	_, err := DB.StudentCollection.InsertOne(ctx, student)
	return err
}

// GetStudentByID - ดึงข้อมูลนิสิตตาม ID
func GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid student ID")
	}

	var student models.Student
	if err := DB.StudentCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// GetAllStudents - ดึงข้อมูลนิสิตทั้งหมด
func GetAllStudents(ctx context.Context) ([]models.Student, error) {
	cursor, err := DB.StudentCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Student
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SetEnrolled flags whether the student has a persisted biometric set.
func SetEnrolled(ctx context.Context, studentID primitive.ObjectID, enrolled bool) error {
	_, err := DB.StudentCollection.UpdateOne(ctx,
		bson.M{"_id": studentID},
		bson.M{"$set": bson.M{"enrolled": enrolled}},
	)
	return err
}

// RegisterForCourse creates a registration if one does not exist yet.
func RegisterForCourse(ctx context.Context, studentID, courseID primitive.ObjectID) error {
	filter := bson.M{"studentId": studentID, "courseId": courseID}
	count, err := DB.RegistrationCollection.CountDocuments(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = DB.RegistrationCollection.InsertOne(ctx, models.Registration{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		CourseID:  courseID,
	})
	return err
}

// IsRegisteredForCourse reports whether the student attends the course.
func IsRegisteredForCourse(ctx context.Context, studentID, courseID primitive.ObjectID) (bool, error) {
	count, err := DB.RegistrationCollection.CountDocuments(ctx, bson.M{
		"studentId": studentID,
		"courseId":  courseID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListRegisteredForCourse returns the students registered for a course.
func ListRegisteredForCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Student, error) {
	cursor, err := DB.RegistrationCollection.Find(ctx, bson.M{"courseId": courseID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var reg models.Registration
		if err := cursor.Decode(&reg); err != nil {
			continue
		}
		ids = append(ids, reg.StudentID)
	}
	if len(ids) == 0 {
		return []models.Student{}, nil
	}

	studentCursor, err := DB.StudentCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer studentCursor.Close(ctx)

	var result []models.Student
	if err := studentCursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ErrNotFound for callers that want to branch on a missing student.
var ErrNotFound = mongo.ErrNoDocuments
