package redis

import (
	"errors"
	"time"
)

// Config holds connection settings for a single-node deployment
type Config struct {
	Addr     string `mapstructure:"addr" yaml:"addr"` // host:port
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`

	PoolSize     int `mapstructure:"pool_size" yaml:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns" yaml:"min_idle_conns"`

	DialTimeout  time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout" yaml:"pool_timeout"`
}

// DefaultConfig returns default connection settings
func DefaultConfig() *Config {
	return &Config{
		Addr: "localhost:6379",
		DB:   0,

		PoolSize:     10,
		MinIdleConns: 5,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("redis: addr is required")
	}
	if c.DB < 0 || c.DB > 15 {
		return errors.New("redis: db must be between 0 and 15")
	}
	if c.PoolSize <= 0 {
		return errors.New("redis: pool_size must be > 0")
	}
	if c.MinIdleConns < 0 {
		return errors.New("redis: min_idle_conns must be >= 0")
	}
	if c.MinIdleConns > c.PoolSize {
		return errors.New("redis: min_idle_conns cannot exceed pool_size")
	}
	if c.DialTimeout <= 0 {
		return errors.New("redis: dial_timeout must be > 0")
	}
	if c.PoolTimeout <= 0 {
		return errors.New("redis: pool_timeout must be > 0")
	}
	return nil
}
