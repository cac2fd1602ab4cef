package controllers

import (
	"Backend-Bioattend-003/src/services"
	"Backend-Bioattend-003/src/utils"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an operator and issues the token pair.
func Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.Validate.Struct(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	operator, err := services.AuthenticateOperator(body.Email, body.Password)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, err.Error())
	}

	access, refresh, err := services.IssueTokens(operator)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"accessToken":  access,
		"refreshToken": refresh,
		"operator":     operator,
	})
}

type refreshRequest struct {
	OperatorID   string `json:"operatorId" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh rotates the token pair.
func Refresh(c *fiber.Ctx) error {
	var body refreshRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.Validate.Struct(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	access, refresh, err := services.RefreshTokens(body.OperatorID, body.RefreshToken)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, err.Error())
	}
	return c.JSON(fiber.Map{"accessToken": access, "refreshToken": refresh})
}

// Logout drops the operator's refresh token.
func Logout(c *fiber.Ctx) error {
	operatorID, _ := c.Locals("operatorId").(string)
	if operatorID == "" {
		return utils.HandleError(c, fiber.StatusUnauthorized, "not authenticated")
	}
	if err := services.Logout(operatorID); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}
