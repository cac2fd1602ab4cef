package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	DB "Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// applySignIn mutates rec into a fresh sign-in. A record that is already
// Present is left untouched and the original timestamp is reported back.
func applySignIn(rec *models.AttendanceRecord, now time.Time, method, label string) error {
	if rec.SignInStatus == models.SignInStatusPresent && rec.SignInTime != nil {
		return &AlreadySignedInError{At: *rec.SignInTime}
	}
	// a record without a prior sign-in is treated as a fresh sign-in
	rec.SignInTime = &now
	rec.SignInStatus = models.SignInStatusPresent
	rec.VerificationMethod = method
	rec.BiometricLabel = label
	return nil
}

// applySignOut closes the day's record. Duration is computed exactly once,
// at this transition, in whole minutes rounded down.
func applySignOut(rec *models.AttendanceRecord, now time.Time) error {
	if rec.SignInTime == nil || rec.SignInStatus != models.SignInStatusPresent {
		return ErrNotYetSignedIn
	}
	if rec.SignOutStatus == models.SignOutStatusCompleted && rec.SignOutTime != nil {
		return &AlreadySignedOutError{At: *rec.SignOutTime}
	}
	rec.SignOutTime = &now
	rec.SignOutStatus = models.SignOutStatusCompleted
	rec.TotalDurationMinutes = int(now.Sub(*rec.SignInTime) / time.Minute)
	return nil
}

// Apply runs the record transaction for a resolved identity inside an open
// session, then bumps the session's markedCount.
func Apply(ctx context.Context, session *models.AttendanceSession, studentID primitive.ObjectID, method, label string) (*models.AttendanceRecord, error) {
	now := time.Now()
	date := DayKey(now)
	filter := bson.M{
		"studentId": studentID,
		"courseId":  session.CourseID,
		"date":      date,
	}

	var rec models.AttendanceRecord
	err := DB.RecordCollection.FindOne(ctx, filter).Decode(&rec)
	found := err == nil
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	switch session.Type {
	case models.SessionTypeSignIn:
		if !found {
			rec = models.AttendanceRecord{
				ID:        primitive.NewObjectID(),
				StudentID: studentID,
				CourseID:  session.CourseID,
				Date:      date,
			}
			if err := applySignIn(&rec, now, method, label); err != nil {
				return nil, err
			}
			if _, err := DB.RecordCollection.InsertOne(ctx, rec); err != nil {
				return nil, err
			}
		} else {
			if err := applySignIn(&rec, now, method, label); err != nil {
				return nil, err
			}
			if err := replaceRecord(ctx, filter, &rec); err != nil {
				return nil, err
			}
		}

	case models.SessionTypeSignOut:
		if !found {
			return nil, ErrNotYetSignedIn
		}
		if err := applySignOut(&rec, now); err != nil {
			return nil, err
		}
		if err := replaceRecord(ctx, filter, &rec); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("invalid session type %q", session.Type)
	}

	_, err = DB.SessionCollection.UpdateOne(ctx,
		bson.M{"sessionId": session.SessionID},
		bson.M{"$inc": bson.M{"markedCount": 1}},
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func replaceRecord(ctx context.Context, filter bson.M, rec *models.AttendanceRecord) error {
	// _id is immutable, update the mutable fields only
	update := bson.M{"$set": bson.M{
		"signInTime":           rec.SignInTime,
		"signInStatus":         rec.SignInStatus,
		"signOutTime":          rec.SignOutTime,
		"signOutStatus":        rec.SignOutStatus,
		"verificationMethod":   rec.VerificationMethod,
		"biometricLabel":       rec.BiometricLabel,
		"totalDurationMinutes": rec.TotalDurationMinutes,
	}}
	_, err := DB.RecordCollection.UpdateOne(ctx, filter, update)
	return err
}

// ListRecords returns a course's records for one day.
func ListRecords(ctx context.Context, courseID primitive.ObjectID, date string) ([]models.AttendanceRecord, error) {
	cursor, err := DB.RecordCollection.Find(ctx, bson.M{"courseId": courseID, "date": date})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
