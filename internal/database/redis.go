package database

import (
	"context"
	"log"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	if _, err := Redis.Ping(context.Background()).Result(); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Auth codes and rate limiting fall back to in-process stores.", err)
		Redis = nil
		return
	}
	log.Println("Connected to Redis successfully")
}
