package services

import (
	"context"
	"errors"
	"strings"
	"time"

	DB "Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/models"
	"Backend-Bioattend-003/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// AuthenticateOperator checks credentials and returns the operator profile.
func AuthenticateOperator(email, password string) (*models.Operator, error) {
	ctx := context.Background()

	var operator models.Operator
	err := DB.OperatorCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&operator)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return &operator, nil
}

// IssueTokens creates the JWT pair for a logged-in operator. The refresh
// token lives in Redis for the rotation window.
func IssueTokens(operator *models.Operator) (accessToken, refreshToken string, err error) {
	accessToken, err = utils.GenerateJWT(operator.ID.Hex(), operator.Email, operator.Role)
	if err != nil {
		return "", "", err
	}

	refreshToken = utils.GenerateRandomString(64)
	if err := utils.StoreRefreshToken(operator.ID.Hex(), refreshToken, refreshTokenTTL); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// RefreshTokens rotates the pair when the presented refresh token matches.
func RefreshTokens(operatorID, refreshToken string) (string, string, error) {
	ok, err := utils.ValidateRefreshToken(operatorID, refreshToken)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", errors.New("invalid refresh token")
	}

	ctx := context.Background()
	var operator models.Operator
	objID, err := operatorObjectID(operatorID)
	if err != nil {
		return "", "", err
	}
	if err := DB.OperatorCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&operator); err != nil {
		return "", "", errors.New("operator not found")
	}
	return IssueTokens(&operator)
}

// Logout drops the stored refresh token.
func Logout(operatorID string) error {
	return utils.DeleteRefreshToken(operatorID)
}
