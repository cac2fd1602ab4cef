package utils

import (
	"context"
	"fmt"
	"time"

	DB "Backend-Bioattend-003/src/database"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// ensureClient returns the shared Redis client managed by the database
// package. Callers handle a nil client (Redis optional in development).
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// StoreRefreshToken เก็บ refresh token ใน Redis พร้อม expiration
func StoreRefreshToken(operatorID, refreshToken string, expiresIn time.Duration) error {
	client := ensureClient()
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("refresh_token:%s", operatorID)
	if err := client.Set(Ctx, key, refreshToken, expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %v", err)
	}
	return nil
}

// ValidateRefreshToken ตรวจสอบว่า refresh token ตรงกับที่เก็บไว้ใน Redis หรือไม่
func ValidateRefreshToken(operatorID, refreshToken string) (bool, error) {
	client := ensureClient()
	if client == nil {
		return true, nil
	}

	key := fmt.Sprintf("refresh_token:%s", operatorID)
	storedToken, err := client.Get(Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get refresh token: %v", err)
	}

	return storedToken == refreshToken, nil
}

// DeleteRefreshToken ลบ refresh token จาก Redis (ใช้ตอน logout)
func DeleteRefreshToken(operatorID string) error {
	client := ensureClient()
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("refresh_token:%s", operatorID)
	if err := client.Del(Ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %v", err)
	}
	return nil
}
