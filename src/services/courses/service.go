package courses

import (
	"context"
	"errors"

	DB "Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateCourse - เพิ่มคอร์สใหม่
func CreateCourse(ctx context.Context, course *models.Course) error {
	course.ID = primitive.NewObjectID()
	_, err := DB.CourseCollection.InsertOne(ctx, course)
	return err
}

// GetCourseByID - ดึงข้อมูลคอร์สตาม ID
func GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid course ID")
	}

	var course models.Course
	if err := DB.CourseCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

// GetAllCourses - ดึงข้อมูลคอร์สทั้งหมด
func GetAllCourses(ctx context.Context) ([]models.Course, error) {
	cursor, err := DB.CourseCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Course
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
