package controllers

import (
	"Backend-Bioattend-003/src/models"
	"Backend-Bioattend-003/src/services/students"
	"Backend-Bioattend-003/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateStudent - เพิ่มนิสิตใหม่
func CreateStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if student.Code == "" || student.Name == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "code and name are required")
	}

	if err := students.CreateStudent(c.Context(), &student); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

// GetAllStudents - ดึงข้อมูลนิสิตทั้งหมด
func GetAllStudents(c *fiber.Ctx) error {
	result, err := students.GetAllStudents(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// GetStudentByID - ดึงข้อมูลนิสิตตาม ID
func GetStudentByID(c *fiber.Ctx) error {
	student, err := students.GetStudentByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "student not found")
	}
	return c.JSON(student)
}

// RegisterStudentForCourse ties a student to a course.
func RegisterStudentForCourse(c *fiber.Ctx) error {
	studentID, err1 := primitive.ObjectIDFromHex(c.Params("id"))
	courseID, err2 := primitive.ObjectIDFromHex(c.Params("courseId"))
	if err1 != nil || err2 != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid student or course ID")
	}

	if err := students.RegisterForCourse(c.Context(), studentID, courseID); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"message": "registered"})
}
