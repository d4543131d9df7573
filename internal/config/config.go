package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Kakao    KakaoConfig
	Map      MapConfig
	Log      LogConfig
	Worker   WorkerConfig
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
	SearchCacheTTL   time.Duration
	SnapshotCacheTTL time.Duration
}

// KakaoConfig - настройки клиента Kakao Local API
type KakaoConfig struct {
	AppKey         string
	BaseURL        string
	RequestTimeout int
}

// MapConfig - параметры карты по умолчанию
type MapConfig struct {
	DefaultCenterLat float64
	DefaultCenterLon float64
	DefaultZoomLevel int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

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
			SearchCacheTTL:   time.Duration(viper.GetInt("SEARCH_CACHE_TTL")) * time.Second,
			SnapshotCacheTTL: time.Duration(viper.GetInt("SNAPSHOT_CACHE_TTL")) * time.Second,
		},
		Kakao: KakaoConfig{
			AppKey:         viper.GetString("KAKAO_APP_KEY"),
			BaseURL:        viper.GetString("KAKAO_BASE_URL"),
			RequestTimeout: viper.GetInt("KAKAO_REQUEST_TIMEOUT"),
		},
		Map: MapConfig{
			DefaultCenterLat: viper.GetFloat64("MAP_DEFAULT_CENTER_LAT"),
			DefaultCenterLon: viper.GetFloat64("MAP_DEFAULT_CENTER_LON"),
			DefaultZoomLevel: viper.GetInt("MAP_DEFAULT_ZOOM_LEVEL"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Kakao.BaseURL == "" {
		cfg.Kakao.BaseURL = "https://dapi.kakao.com"
	}
	if cfg.Kakao.RequestTimeout == 0 {
		cfg.Kakao.RequestTimeout = 10
	}
	if cfg.Map.DefaultCenterLat == 0 && cfg.Map.DefaultCenterLon == 0 {
		// Сеул по умолчанию
		cfg.Map.DefaultCenterLat = 37.5665
		cfg.Map.DefaultCenterLon = 126.9780
	}
	if cfg.Map.DefaultZoomLevel == 0 {
		cfg.Map.DefaultZoomLevel = 7
	}
	if cfg.Cache.SearchCacheTTL == 0 {
		cfg.Cache.SearchCacheTTL = 5 * time.Minute
	}
	if cfg.Cache.SnapshotCacheTTL == 0 {
		cfg.Cache.SnapshotCacheTTL = time.Minute
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "map-render-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
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
