package redis

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Set sets a key with an optional expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	err := c.rdb.Set(ctx, key, value, expiration).Err()
	if err != nil {
		c.logger.Error("redis set failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return err
}

// Get returns the value for a key; ErrNil when absent
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil && !IsNil(err) {
		c.logger.Error("redis get failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return val, err
}

// GetDel returns the value for a key and deletes it atomically
func (c *Client) GetDel(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.GetDel(ctx, key).Result()
	if err != nil && !IsNil(err) {
		c.logger.Error("redis getdel failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return val, err
}

// Del deletes keys
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		c.logger.Error("redis del failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
	return n, err
}

// Exists reports how many of the given keys exist
func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	n, err := c.rdb.Exists(ctx, keys...).Result()
	if err != nil {
		c.logger.Error("redis exists failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
	return n, err
}

// Expire sets a key's expiration
func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	ok, err := c.rdb.Expire(ctx, key, expiration).Result()
	if err != nil {
		c.logger.Error("redis expire failed",
			zap.String("key", key),
			zap.Duration("expiration", expiration),
			zap.Error(err),
		)
	}
	return ok, err
}

// TTL returns a key's remaining lifetime
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := c.rdb.TTL(ctx, key).Result()
	if err != nil {
		c.logger.Error("redis ttl failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return ttl, err
}

// Incr increments a counter key
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	val, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		c.logger.Error("redis incr failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return val, err
}

// SetNX sets a key only if it does not exist
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, key, value, expiration).Result()
	if err != nil {
		c.logger.Error("redis setnx failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return ok, err
}

// Eval runs a Lua script
func (c *Client) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	val, err := c.rdb.Eval(ctx, script, keys, args...).Result()
	if err != nil && !IsNil(err) {
		c.logger.Error("redis eval failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
	return val, err
}
