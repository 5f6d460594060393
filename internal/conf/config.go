package conf

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Auth     AuthConfig
	OAuth    OAuthConfig
	AI       AIConfig
	Search   SearchConfig
	Email    EmailConfig
	Apollo   ApolloConfig
	Frontend FrontendConfig
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	JWTIssuer       string        `mapstructure:"jwt_issuer"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

type OAuthConfig struct {
	GoogleClientID     string   `mapstructure:"google_client_id"`
	GoogleClientSecret string   `mapstructure:"google_client_secret"`
	RedirectURL        string   `mapstructure:"redirect_url"`
	Scopes             []string `mapstructure:"scopes"`
}

// AIConfig selects and configures the completion provider
type AIConfig struct {
	Provider  string          `mapstructure:"provider"` // anthropic, openai
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
}

type AnthropicConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig configures the people-search pipeline
type SearchConfig struct {
	Provider    string        `mapstructure:"provider"` // google, searxng
	APIKey      string        `mapstructure:"api_key"`
	EngineID    string        `mapstructure:"engine_id"`
	SearXNGURL  string        `mapstructure:"searxng_url"`
	Concurrency int           `mapstructure:"concurrency"` // fan-out pool size
	BestEffort  bool          `mapstructure:"best_effort"` // aggregate partial results instead of failing
	Timeout     time.Duration `mapstructure:"timeout"`
}

type EmailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
}

type ApolloConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type FrontendConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.AI.Provider == "" {
		c.AI.Provider = "anthropic"
	}
	if c.AI.Anthropic.Model == "" {
		c.AI.Anthropic.Model = "claude-3-opus-20240229"
	}
	if c.Search.Provider == "" {
		c.Search.Provider = "google"
	}
	if c.Search.Concurrency <= 0 {
		c.Search.Concurrency = 4
	}
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = 30 * time.Second
	}
	if c.Auth.AccessTokenTTL <= 0 {
		c.Auth.AccessTokenTTL = 15 * time.Minute
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		c.Auth.RefreshTokenTTL = 14 * 24 * time.Hour
	}
	if c.Email.SMTPHost == "" {
		c.Email.SMTPHost = "smtp.gmail.com"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Apollo.BaseURL == "" {
		c.Apollo.BaseURL = "https://api.apollo.io/api/v1"
	}
}

// Validate checks that credentials the pipeline cannot run without are present
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "anthropic":
		if c.AI.Anthropic.APIKey == "" {
			return errors.New("conf: ai.anthropic.api_key is required")
		}
	case "openai":
		if c.AI.OpenAI.APIKey == "" {
			return errors.New("conf: ai.openai.api_key is required")
		}
	default:
		return fmt.Errorf("conf: unknown ai provider %q", c.AI.Provider)
	}

	switch c.Search.Provider {
	case "google":
		if c.Search.APIKey == "" || c.Search.EngineID == "" {
			return errors.New("conf: search.api_key and search.engine_id are required for the google provider")
		}
	case "searxng":
		if c.Search.SearXNGURL == "" {
			return errors.New("conf: search.searxng_url is required for the searxng provider")
		}
	default:
		return fmt.Errorf("conf: unknown search provider %q", c.Search.Provider)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("conf: auth.jwt_secret is required")
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
