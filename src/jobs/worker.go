package jobs

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HandleSessionReportTask aggregates a closed session's attendance records
// into a sessionReports document.
func HandleSessionReportTask(ctx context.Context, t *asynq.Task) error {
	var payload SessionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	var session models.AttendanceSession
	err := database.SessionCollection.FindOne(ctx, bson.M{"sessionId": payload.SessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Println("⚠️ Session not found. Possibly deleted. Skipping task:", payload.SessionID)
			return nil
		}
		return err
	}
	if session.ClosedAt == nil {
		log.Println("⚠️ Session still open, skipping report:", payload.SessionID)
		return nil
	}

	date := session.OpenedAt.Format("2006-01-02")

	cursor, err := database.RecordCollection.Find(ctx, bson.M{
		"courseId": session.CourseID,
		"date":     date,
	})
	if err != nil {
		return err
	}
	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return err
	}
	byStudent := make(map[string]models.AttendanceRecord, len(records))
	for _, rec := range records {
		byStudent[rec.StudentID.Hex()] = rec
	}

	regCursor, err := database.RegistrationCollection.Find(ctx, bson.M{"courseId": session.CourseID})
	if err != nil {
		return err
	}
	var registrations []models.Registration
	if err := regCursor.All(ctx, &registrations); err != nil {
		return err
	}

	report := models.SessionReport{
		SessionID:   session.SessionID,
		CourseID:    session.CourseID,
		Type:        session.Type,
		Date:        date,
		MarkedCount: session.MarkedCount,
		GeneratedAt: time.Now(),
	}

	for _, reg := range registrations {
		var student models.Student
		if err := database.StudentCollection.FindOne(ctx, bson.M{"_id": reg.StudentID}).Decode(&student); err != nil {
			continue
		}
		mark := models.StudentMark{
			StudentID: reg.StudentID,
			Name:      student.Name,
			Code:      student.Code,
		}
		if rec, ok := byStudent[reg.StudentID.Hex()]; ok {
			mark.SignedIn = rec.SignInStatus == models.SignInStatusPresent
			mark.SignedOut = rec.SignOutStatus == models.SignOutStatusCompleted
			mark.DurationMn = rec.TotalDurationMinutes
		}
		if !mark.SignedIn {
			report.AbsentCount++
		}
		report.StudentMarks = append(report.StudentMarks, mark)
	}

	_, err = database.SessionReportCollection.UpdateOne(ctx,
		bson.M{"sessionId": session.SessionID},
		bson.M{"$set": report},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	log.Println("✅ Session report generated:", session.SessionID)
	return nil
}

// RunWorker starts the asynq server. Called from main when Redis is up.
func RunWorker() {
	if database.RedisURI == "" {
		log.Println("⚠️ Redis not available. Report worker not started.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionReport, HandleSessionReportTask)

	if err := srv.Run(mux); err != nil {
		log.Println("❌ Asynq worker stopped:", err)
	}
}
