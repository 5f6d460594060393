package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default config", func(c *Config) {}, false},
		{"missing addr", func(c *Config) { c.Addr = "" }, true},
		{"db out of range", func(c *Config) { c.DB = 16 }, true},
		{"zero pool size", func(c *Config) { c.PoolSize = 0 }, true},
		{"idle exceeds pool", func(c *Config) { c.MinIdleConns = c.PoolSize + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
