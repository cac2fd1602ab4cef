package controllers

import (
	"errors"
	"time"

	DB "Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/models"
	"Backend-Bioattend-003/src/services/attendance"
	"Backend-Bioattend-003/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type openSessionRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=signin signout"`
	Force    bool   `json:"force"` // confirm opening sign-out with no pending sign-ins
}

// OpenAttendanceSession opens a per-course, per-type attendance window.
func OpenAttendanceSession(c *fiber.Ctx) error {
	var body openSessionRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.Validate.Struct(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	openedBy, _ := c.Locals("operatorId").(string)
	session, err := attendance.OpenSession(c.Context(), body.CourseID, body.Type, openedBy, body.Force)
	if err != nil {
		return utils.HandleError(c, statusForError(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// CloseAttendanceSession closes the window and queues report generation.
func CloseAttendanceSession(c *fiber.Ctx) error {
	session, err := attendance.CloseSession(c.Context(), c.Params("sessionId"))
	if err != nil {
		return utils.HandleError(c, statusForError(err), err.Error())
	}
	return c.JSON(session)
}

// VerifyAttendance runs one biometric verification attempt in a session.
func VerifyAttendance(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var body submitSampleRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.Validate.Struct(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	sample := &models.BiometricSample{
		Kind:         body.Kind,
		ImageData:    body.ImageData,
		QualityScore: body.QualityScore,
		CapturedAt:   time.Now(),
	}

	result, err := attendance.Verify(c.Context(), sessionID, sample)
	if err != nil {
		return utils.HandleError(c, statusForError(err), err.Error())
	}
	return c.JSON(result)
}

// GetAttendanceRecords lists a course's records for a day (default today).
func GetAttendanceRecords(c *fiber.Ctx) error {
	courseID, err := primitive.ObjectIDFromHex(c.Params("courseId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid course ID")
	}
	date := c.Query("date", attendance.DayKey(time.Now()))

	records, err := attendance.ListRecords(c.Context(), courseID, date)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(records)
}

// GetSessionReport returns the generated report for a closed session.
func GetSessionReport(c *fiber.Ctx) error {
	var report models.SessionReport
	err := DB.SessionReportCollection.FindOne(c.Context(), bson.M{"sessionId": c.Params("sessionId")}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.HandleError(c, fiber.StatusNotFound, "report not generated yet")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(report)
}
