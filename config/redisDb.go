package config

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
)
var ctx = context.Background()

func GetRedisDB() *redis.Client {
	return rdb
}

func GetRedisContext() context.Context {
	return ctx
}

func init() {
	godotenv.Load()
}

// ConnectRedisWithRetry connects and sets the global redis client.
// Redis is an optional cache: all helpers below no-op when rdb is nil,
// so the API remains fully functional without it.
func ConnectRedisWithRetry() {
	redisAddress := os.Getenv("REDIS_ADDRESS")
	if redisAddress == "" {
		log.Printf("REDIS_ADDRESS not set; running without cache")
		return
	}

	var attempt int
	for attempt < 5 {
		attempt++
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddress,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := client.Ping(ctx).Err(); err == nil {
			rdb = client
			log.Printf("connected to redis (attempt=%d)", attempt)
			return
		} else {
			log.Printf("failed to connect redis (attempt=%d): %v", attempt, err)
		}
		time.Sleep(time.Second * time.Duration(attempt))
	}
	log.Printf("giving up on redis; running without cache")
}

func GetRedisObject(key string, dest interface{}) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	err = json.Unmarshal([]byte(val), &dest)
	if err != nil {
		return false, err
	}
	return true, nil
}

func SetRedisObject(key string, obj interface{}, exp time.Duration) error {
	if rdb == nil {
		return nil
	}
	objInByte, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	if err = rdb.Set(ctx, key, objInByte, exp).Err(); err != nil {
		return err
	}
	return nil
}

func RemoveRedisKey(key string) error {
	if rdb == nil {
		return nil
	}
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	return nil
}
