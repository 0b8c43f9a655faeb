package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Engine    EngineConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ResultTTLSeconds int
}

// EngineConfig carries the scoring thresholds. Defaults match the
// production heuristic; override via env for experimentation only.
type EngineConfig struct {
	StockCriticalThreshold int
	QualityLowThreshold    float64
	MarginLowThreshold     float64
	MarginHighThreshold    float64
	SyncStaleHours         float64
}

type SchedulerConfig struct {
	Enabled     bool
	RefreshSpec string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "shopex")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_RESULT_TTL_SECONDS", 300)
		viper.SetDefault("ENGINE_STOCK_CRITICAL_THRESHOLD", 10)
		viper.SetDefault("ENGINE_QUALITY_LOW_THRESHOLD", 40.0)
		viper.SetDefault("ENGINE_MARGIN_LOW_THRESHOLD", 15.0)
		viper.SetDefault("ENGINE_MARGIN_HIGH_THRESHOLD", 30.0)
		viper.SetDefault("ENGINE_SYNC_STALE_HOURS", 24.0)
		viper.SetDefault("SCHEDULER_ENABLED", false)
		viper.SetDefault("SCHEDULER_REFRESH_SPEC", "@every 5m")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ResultTTLSeconds: viper.GetInt("CACHE_RESULT_TTL_SECONDS"),
			},
			Engine: EngineConfig{
				StockCriticalThreshold: viper.GetInt("ENGINE_STOCK_CRITICAL_THRESHOLD"),
				QualityLowThreshold:    viper.GetFloat64("ENGINE_QUALITY_LOW_THRESHOLD"),
				MarginLowThreshold:     viper.GetFloat64("ENGINE_MARGIN_LOW_THRESHOLD"),
				MarginHighThreshold:    viper.GetFloat64("ENGINE_MARGIN_HIGH_THRESHOLD"),
				SyncStaleHours:         viper.GetFloat64("ENGINE_SYNC_STALE_HOURS"),
			},
			Scheduler: SchedulerConfig{
				Enabled:     viper.GetBool("SCHEDULER_ENABLED"),
				RefreshSpec: viper.GetString("SCHEDULER_REFRESH_SPEC"),
			},
		}
	})

	return instance
}
