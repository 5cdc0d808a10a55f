package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	DataSource DataSourceConfig
	Sync       SyncConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SearchCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// DataSourceConfig - внешний источник данных о парковках
type DataSourceConfig struct {
	URL     string
	Timeout time.Duration
}

// SyncConfig - параметры синхронизации
type SyncConfig struct {
	WorkerEnabled bool
	Interval      time.Duration
	Timeout       time.Duration
	DefaultLimit  int
	MaxLimit      int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env необязателен - все параметры могут прийти из окружения
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SearchCacheTTL: time.Duration(viper.GetInt("SEARCH_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		DataSource: DataSourceConfig{
			URL:     viper.GetString("PARKING_SOURCE_URL"),
			Timeout: time.Duration(viper.GetInt("PARKING_SOURCE_TIMEOUT")) * time.Second,
		},
		Sync: SyncConfig{
			WorkerEnabled: viper.GetBool("SYNC_WORKER_ENABLED"),
			Interval:      time.Duration(viper.GetInt("SYNC_INTERVAL")) * time.Second,
			Timeout:       time.Duration(viper.GetInt("SYNC_TIMEOUT")) * time.Second,
			DefaultLimit:  viper.GetInt("SEARCH_DEFAULT_LIMIT"),
			MaxLimit:      viper.GetInt("SEARCH_MAX_LIMIT"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3847
	}
	if cfg.DataSource.URL == "" {
		cfg.DataSource.URL = "https://apidata.mos.ru/opendata/7710881420-parking/data"
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 60 * time.Second
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 6 * time.Hour
	}
	if cfg.Sync.Timeout == 0 {
		cfg.Sync.Timeout = 120 * time.Second
	}
	if cfg.Sync.DefaultLimit == 0 {
		cfg.Sync.DefaultLimit = 20
	}
	if cfg.Sync.MaxLimit == 0 {
		cfg.Sync.MaxLimit = 100
	}
	if cfg.Cache.SearchCacheTTL == 0 {
		cfg.Cache.SearchCacheTTL = 60 * time.Second
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
