package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	View  ViewConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// ViewConfig tunes the schedule/appointment view engine: how long fetched
// collections stay fresh, the default appointment page size, and the TTL of
// the directory (doctor/room) read-through cache.
type ViewConfig struct {
	CacheTTL     time.Duration
	PageSize     int
	DirectoryTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("VIEW_CACHE_TTL"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}

	directoryTTL, err := time.ParseDuration(viper.GetString("DIRECTORY_CACHE_TTL"))
	if err != nil {
		directoryTTL = 15 * time.Minute
	}

	pageSize := viper.GetInt("VIEW_PAGE_SIZE")
	if pageSize < 1 {
		pageSize = 10
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		View: ViewConfig{
			CacheTTL:     cacheTTL,
			PageSize:     pageSize,
			DirectoryTTL: directoryTTL,
		},
	}

	return config, nil
}
