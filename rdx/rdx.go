package rdx

import (
	"time"

	"riviera/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	Conn = redis.NewClient(&redis.Options{
		Addr:     globals.EnvOr("REDIS_ADDR", "localhost:6379"),
		Password: globals.EnvOr("REDIS_PASSWORD", ""),
		DB:       0,
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) (int64, error) {
	return Conn.Del(globals.Ctx, key).Result()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}
