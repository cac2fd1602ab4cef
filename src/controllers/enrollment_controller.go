package controllers

import (
	"time"

	"Backend-Bioattend-003/src/models"
	"Backend-Bioattend-003/src/services/candidates"
	"Backend-Bioattend-003/src/services/enrollment"
	"Backend-Bioattend-003/src/services/students"
	"Backend-Bioattend-003/src/utils"

	"github.com/gofiber/fiber/v2"
)

type openEnrollmentRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	ReEnroll  bool   `json:"reEnroll"`
}

// OpenEnrollment starts a capture session for a student. Re-enrollment
// first deletes the student's persisted set; supersede is explicit only.
func OpenEnrollment(c *fiber.Ctx) error {
	var body openEnrollmentRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.Validate.Struct(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := students.GetStudentByID(c.Context(), body.StudentID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "student not found")
	}

	existing, err := candidates.CountByOwner(c.Context(), student.ID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	if existing > 0 {
		if !body.ReEnroll {
			return utils.HandleError(c, fiber.StatusConflict, "student already enrolled; set reEnroll to replace the existing set")
		}
		if _, err := candidates.DeleteByOwner(c.Context(), student.ID); err != nil {
			return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
		}
		if err := students.SetEnrolled(c.Context(), student.ID, false); err != nil {
			return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
		}
		enrollment.Default.CacheInvalidate()
	}

	sess := enrollment.Default.Open(student.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sessionId": sess.ID,
		"studentId": student.ID,
		"slots":     sess.Slots,
	})
}

type submitSampleRequest struct {
	Kind         string `json:"kind" validate:"required"`
	ImageData    []byte `json:"imageData" validate:"required"`
	QualityScore int    `json:"qualityScore" validate:"min=0,max=100"`
}

// SubmitSample runs one capture through the duplicate checks into its slot.
func SubmitSample(c *fiber.Ctx) error {
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

	slot, err := enrollment.Default.Submit(c.Context(), sessionID, sample)
	if err != nil {
		status := statusForError(err)
		if slot != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error(), "slot": slot})
		}
		return utils.HandleError(c, status, err.Error())
	}
	return c.JSON(slot)
}

// GetEnrollmentStatus reports the slot states of an open session.
func GetEnrollmentStatus(c *fiber.Ctx) error {
	sess, err := enrollment.Default.Get(c.Params("sessionId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{
		"sessionId": sess.ID,
		"studentId": sess.StudentID,
		"complete":  sess.Complete(),
		"slots":     sess.Slots,
	})
}

// CompleteEnrollment persists the whole slot set in one write.
func CompleteEnrollment(c *fiber.Ctx) error {
	if err := enrollment.Default.Persist(c.Context(), c.Params("sessionId")); err != nil {
		return utils.HandleError(c, statusForError(err), err.Error())
	}
	return c.JSON(fiber.Map{"message": "enrollment persisted"})
}

// AbortEnrollment discards an in-progress session.
func AbortEnrollment(c *fiber.Ctx) error {
	enrollment.Default.Abort(c.Params("sessionId"))
	return c.JSON(fiber.Map{"message": "enrollment aborted"})
}
