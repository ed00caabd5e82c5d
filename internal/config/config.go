package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	CORS       CORSConfig
	Upload     UploadConfig
	Completion CompletionConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	ServiceName  string        `mapstructure:"service_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings. A single "*" entry allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds upload limits. MaxFileSizeMB of 0 disables the limit.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes, or 0 when unlimited.
func (u *UploadConfig) MaxBytes() int64 {
	if u.MaxFileSizeMB <= 0 {
		return 0
	}
	return u.MaxFileSizeMB * 1024 * 1024
}

// CompletionConfig holds settings for the completion API provider.
type CompletionConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MaxTokens   int    `mapstructure:"max_tokens"`
}

// Timeout returns the upstream client timeout, defaulting to 120s.
func (c *CompletionConfig) Timeout() time.Duration {
	if c.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RateLimitConfig holds inbound throttling settings. RequestsPerSecond of 0 disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// providerKeyEnv lists the conventional API key variable for each provider,
// consulted when DOCANALYZER_COMPLETION_API_KEY is not set.
var providerKeyEnv = map[string]string{
	"groq":   "GROQ_API_KEY",
	"openai": "OPENAI_API_KEY",
	"claude": "ANTHROPIC_API_KEY",
	"gemini": "GEMINI_API_KEY",
}

// Load reads configuration from environment variables with the DOCANALYZER_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.service_name", "Document Analyzer API")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Spreadsheet add-ons call from arbitrary origins
	v.SetDefault("cors.allowed_origins", "*")

	v.SetDefault("upload.max_file_size_mb", 50)

	// Completion defaults
	v.SetDefault("completion.provider", "groq")
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.model", "")
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.timeout_secs", 120)
	v.SetDefault("completion.max_tokens", 4096)

	v.SetDefault("ratelimit.requests_per_second", 0)
	v.SetDefault("ratelimit.burst", 5)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "DOCANALYZER_SERVER_PORT",
		"server.read_timeout":           "DOCANALYZER_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "DOCANALYZER_SERVER_WRITE_TIMEOUT",
		"server.environment":            "DOCANALYZER_SERVER_ENVIRONMENT",
		"server.service_name":           "DOCANALYZER_SERVER_SERVICE_NAME",
		"log.level":                     "DOCANALYZER_LOG_LEVEL",
		"log.format":                    "DOCANALYZER_LOG_FORMAT",
		"cors.allowed_origins":          "DOCANALYZER_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":       "DOCANALYZER_UPLOAD_MAX_FILE_SIZE_MB",
		"completion.provider":           "DOCANALYZER_COMPLETION_PROVIDER",
		"completion.api_key":            "DOCANALYZER_COMPLETION_API_KEY",
		"completion.model":              "DOCANALYZER_COMPLETION_MODEL",
		"completion.base_url":           "DOCANALYZER_COMPLETION_BASE_URL",
		"completion.timeout_secs":       "DOCANALYZER_COMPLETION_TIMEOUT_SECS",
		"completion.max_tokens":         "DOCANALYZER_COMPLETION_MAX_TOKENS",
		"ratelimit.requests_per_second": "DOCANALYZER_RATELIMIT_REQUESTS_PER_SECOND",
		"ratelimit.burst":               "DOCANALYZER_RATELIMIT_BURST",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCANALYZER_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCANALYZER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		ServiceName:  v.GetString("server.service_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	provider := strings.ToLower(strings.TrimSpace(v.GetString("completion.provider")))
	apiKey := strings.TrimSpace(v.GetString("completion.api_key"))
	if apiKey == "" {
		if env, ok := providerKeyEnv[provider]; ok {
			apiKey = strings.TrimSpace(os.Getenv(env))
		}
	}
	cfg.Completion = CompletionConfig{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       v.GetString("completion.model"),
		BaseURL:     v.GetString("completion.base_url"),
		TimeoutSecs: v.GetInt("completion.timeout_secs"),
		MaxTokens:   v.GetInt("completion.max_tokens"),
	}

	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: v.GetFloat64("ratelimit.requests_per_second"),
		Burst:             v.GetInt("ratelimit.burst"),
	}

	return cfg, nil
}
