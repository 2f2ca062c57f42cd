package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/pactify-backend/internal/clients/redis"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/realtime/bus"
)

// Clients holds external connections. Both are nil when REDIS_ADDR is unset and
// the instance runs standalone.
type Clients struct {
	Redis  *goredis.Client
	SSEBus bus.Bus
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	if cfg.Redis.Addr == "" {
		log.Info("REDIS_ADDR not set, using in-process SSE delivery")
		return Clients{}, nil
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	sseBus, err := bus.NewRedisBus(log, rdb, cfg.RedisChannel)
	if err != nil {
		_ = rdb.Close()
		return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
	}
	return Clients{Redis: rdb, SSEBus: sseBus}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SSEBus != nil {
		_ = c.SSEBus.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
