package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	DB "Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/jobs"
	"Backend-Bioattend-003/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DayKey buckets a timestamp into the record's local calendar day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// OpenSession opens a (course, type) attendance window. Opening a sign-out
// session while no student has a pending same-day sign-in is suspicious,
// so it is refused until the operator confirms with force.
func OpenSession(ctx context.Context, courseID, sessionType, openedBy string, force bool) (*models.AttendanceSession, error) {
	courseObjID, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, errors.New("invalid course ID")
	}
	if sessionType != models.SessionTypeSignIn && sessionType != models.SessionTypeSignOut {
		return nil, fmt.Errorf("invalid session type %q", sessionType)
	}

	var existing models.AttendanceSession
	err = DB.SessionCollection.FindOne(ctx, bson.M{
		"courseId": courseObjID,
		"type":     sessionType,
		"closedAt": nil,
	}).Decode(&existing)
	if err == nil {
		return nil, ErrSessionAlreadyOpen
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if sessionType == models.SessionTypeSignOut && !force {
		pending, err := countPendingSignOuts(ctx, courseObjID)
		if err != nil {
			return nil, err
		}
		if pending == 0 {
			return nil, ErrNoPendingSignIns
		}
	}

	session := &models.AttendanceSession{
		ID:          primitive.NewObjectID(),
		SessionID:   uuid.NewString(),
		CourseID:    courseObjID,
		Type:        sessionType,
		OpenedBy:    openedBy,
		OpenedAt:    time.Now(),
		MarkedCount: 0,
	}
	if _, err := DB.SessionCollection.InsertOne(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetOpenSession returns the session by id if it is still open.
func GetOpenSession(ctx context.Context, sessionID string) (*models.AttendanceSession, error) {
	var session models.AttendanceSession
	err := DB.SessionCollection.FindOne(ctx, bson.M{
		"sessionId": sessionID,
		"closedAt":  nil,
	}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotOpen
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CloseSession closes the window, freezing markedCount, and hands report
// generation to the background worker.
func CloseSession(ctx context.Context, sessionID string) (*models.AttendanceSession, error) {
	session, err := GetOpenSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = DB.SessionCollection.UpdateOne(ctx,
		bson.M{"sessionId": sessionID, "closedAt": nil},
		bson.M{"$set": bson.M{"closedAt": now}},
	)
	if err != nil {
		return nil, err
	}
	session.ClosedAt = &now

	if DB.AsynqClient != nil {
		task, err := jobs.NewSessionReportTask(sessionID)
		if err == nil {
			if _, err := DB.AsynqClient.Enqueue(task); err != nil {
				log.Println("⚠️ Failed to enqueue session report:", err)
			}
		}
	}
	return session, nil
}

// countPendingSignOuts counts today's records with a sign-in but no sign-out.
func countPendingSignOuts(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	return DB.RecordCollection.CountDocuments(ctx, bson.M{
		"courseId":     courseID,
		"date":         DayKey(time.Now()),
		"signInStatus": models.SignInStatusPresent,
		"signOutStatus": bson.M{
			"$in": bson.A{nil, ""},
		},
	})
}
