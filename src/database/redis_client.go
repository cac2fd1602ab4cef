package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisCtx    = context.Background()
	RedisURI    string
)

// InitRedis connects the shared Redis client. Without REDIS_URI the backend
// keeps running; refresh tokens and the report worker are simply disabled.
func InitRedis() {
	RedisURI = os.Getenv("REDIS_URI")
	if RedisURI == "" {
		log.Println("⚠️ REDIS_URI not set. Running without Redis.")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     RedisURI,
		Password: "",
		DB:       0,
	})
	if _, err := RedisClient.Ping(RedisCtx).Result(); err != nil {
		log.Println("⚠️ Failed to connect Redis:", err)
		RedisClient = nil
		return
	}
	log.Println("✅ Redis connected successfully")
}
