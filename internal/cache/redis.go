package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/barangay-connect/backend/internal/config"
)

const (
	RedisTypeSingle  = "redis"
	RedisTypeCluster = "redisCluster"
	pingTimeout      = time.Millisecond * 1500
)

var ErrUnknownRedisType = errors.New("wrong redis type")

// NewRedis connects to a single node or a cluster depending on cfg.Type.
// Session snapshots, OTP codes and match status pub/sub share this client.
func NewRedis(cfg config.Cache) (redis.UniversalClient, error) {
	var client redis.UniversalClient
	switch cfg.Type {
	case RedisTypeSingle:
		client = redis.NewClient(&redis.Options{
			Addr:            cfg.Redis.Address,
			Password:        cfg.Redis.Password,
			PoolSize:        cfg.Redis.PoolSize,
			ConnMaxIdleTime: 170 * time.Second,
			DialTimeout:     time.Second * 1,
			ReadTimeout:     time.Second * 1,
			WriteTimeout:    time.Second * 1,
		})
	case RedisTypeCluster:
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           cfg.RedisCluster.Addresses,
			Password:        cfg.RedisCluster.Password,
			RouteRandomly:   false, // reads go to master nodes only
			ReadOnly:        false,
			PoolSize:        cfg.RedisCluster.PoolSize,
			ConnMaxLifetime: 15 * time.Minute,
			DialTimeout:     time.Second * 1,
			ReadTimeout:     time.Second * 1,
			WriteTimeout:    time.Second * 1,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRedisType, cfg.Type)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
