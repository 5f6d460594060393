package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	c := &Config{}
	c.AI.Anthropic.APIKey = "sk-ant-test"
	c.Search.APIKey = "cse-key"
	c.Search.EngineID = "cse-id"
	c.Auth.JWTSecret = "secret"
	c.applyDefaults()
	return c
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing anthropic key", func(t *testing.T) {
		c := validConfig()
		c.AI.Anthropic.APIKey = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing search engine id", func(t *testing.T) {
		c := validConfig()
		c.Search.EngineID = ""
		assert.Error(t, c.Validate())
	})

	t.Run("searxng provider needs url", func(t *testing.T) {
		c := validConfig()
		c.Search.Provider = "searxng"
		assert.Error(t, c.Validate())

		c.Search.SearXNGURL = "http://localhost:8080"
		assert.NoError(t, c.Validate())
	})

	t.Run("unknown providers rejected", func(t *testing.T) {
		c := validConfig()
		c.AI.Provider = "mystery"
		assert.Error(t, c.Validate())

		c = validConfig()
		c.Search.Provider = "mystery"
		assert.Error(t, c.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := validConfig()
		c.Auth.JWTSecret = ""
		assert.Error(t, c.Validate())
	})
}

func TestDefaults(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "anthropic", c.AI.Provider)
	assert.Equal(t, "claude-3-opus-20240229", c.AI.Anthropic.Model)
	assert.Equal(t, "google", c.Search.Provider)
	assert.Equal(t, 4, c.Search.Concurrency)
	assert.Equal(t, "smtp.gmail.com", c.Email.SMTPHost)
	assert.Equal(t, 587, c.Email.SMTPPort)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "localhost", Port: 5432, User: "app", Password: "pw", DBName: "people", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=app password=pw dbname=people sslmode=disable", db.DSN())
}
