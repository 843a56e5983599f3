package config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// SetRedisClientForTest injects a (usually mocked) Redis client.
// This function is only available for testing and should not be used in production code.
func SetRedisClientForTest(client *redis.Client) {
	redisClient = client
}

// ResetRedisClientForTest resets the Redis client singleton between tests.
func ResetRedisClientForTest() {
	redisClient = nil
	redisOnce = sync.Once{}
}
