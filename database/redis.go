package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"shopadmin/config"
)

var Redis *redis.Client

// ConnectRedis is optional: without REDIS_ADDR the exchange proxy simply
// runs uncached.
func ConnectRedis() {
	addr := config.GetEnv("REDIS_ADDR", "")
	if addr == "" {
		log.Info().Msg("REDIS_ADDR not set, exchange rate cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetEnv("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, exchange rate cache disabled")
		return
	}

	Redis = client
	log.Info().Str("addr", addr).Msg("connected to redis")
}
