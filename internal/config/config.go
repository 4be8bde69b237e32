package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	LLM       LLMConfig       `mapstructure:"llm"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// DatabaseConfig Driver 取值 postgres / mysql / sqlite
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
	Debug  bool   `mapstructure:"debug"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	// 超时秒数
	TimeoutSeconds int `mapstructure:"timeout"`
	// Mock 为 true 时不访问模型，生成与评分全部走兜底逻辑
	Mock bool `mapstructure:"mock"`
}

func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig 练习接口按 IP 的窗口限流
type RateLimitConfig struct {
	MaxRequests     int `mapstructure:"max_requests"`
	WindowSeconds   int `mapstructure:"window_seconds"`
	// GlobalPerMinute 进程内全部接口按 IP 的上限
	GlobalPerMinute int `mapstructure:"global_per_minute"`
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "host=localhost user=postgres password=123456 dbname=ittc port=5432 sslmode=disable")

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("llm.base_url", "http://localhost:9997/v1")
	v.SetDefault("llm.api_key", "sk-local")
	v.SetDefault("llm.model", "qwen3")
	v.SetDefault("llm.timeout", 30)
	v.SetDefault("llm.mock", false)

	v.SetDefault("rate_limit.max_requests", 10)
	v.SetDefault("rate_limit.window_seconds", 60)
	v.SetDefault("rate_limit.global_per_minute", 600)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.file", "logs/app.log")
}

// LoadConfig 依次读取 .env、configs/config.yaml（可选）与环境变量
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)
	v.AutomaticEnv()

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.debug", "SQL_ECHO")

	// Redis
	v.BindEnv("redis.url", "REDIS_URL")

	// LLM
	v.BindEnv("llm.base_url", "LLM_BASE_URL")
	v.BindEnv("llm.api_key", "LLM_API_KEY")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("llm.timeout", "LLM_TIMEOUT")
	v.BindEnv("llm.mock", "USE_MOCK")

	// Rate limit
	v.BindEnv("rate_limit.max_requests", "RATE_LIMIT_MAX_REQUESTS")
	v.BindEnv("rate_limit.window_seconds", "RATE_LIMIT_WINDOW_SECONDS")
	v.BindEnv("rate_limit.global_per_minute", "RATE_LIMIT_GLOBAL_PER_MINUTE")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	v.BindEnv("log.file", "LOG_FILE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.WindowSeconds <= 0 || cfg.RateLimit.GlobalPerMinute <= 0 {
		return nil, errors.New("rate_limit.max_requests, window_seconds and global_per_minute must be positive")
	}

	return &cfg, nil
}
