package controllers

import (
	"Backend-Bioattend-003/src/models"
	"Backend-Bioattend-003/src/services/courses"
	"Backend-Bioattend-003/src/services/students"
	"Backend-Bioattend-003/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateCourse - เพิ่มคอร์สใหม่
func CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if course.Name == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "name is required")
	}

	if err := courses.CreateCourse(c.Context(), &course); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// GetAllCourses - ดึงข้อมูลคอร์สทั้งหมด
func GetAllCourses(c *fiber.Ctx) error {
	result, err := courses.GetAllCourses(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// GetCourseByID - ดึงข้อมูลคอร์สตาม ID
func GetCourseByID(c *fiber.Ctx) error {
	course, err := courses.GetCourseByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "course not found")
	}
	return c.JSON(course)
}

// GetRegisteredStudents lists the students registered for a course.
func GetRegisteredStudents(c *fiber.Ctx) error {
	courseID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid course ID")
	}

	result, err := students.ListRegisteredForCourse(c.Context(), courseID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}
