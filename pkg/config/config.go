package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Grid      GridConfig
	Suggest   SuggestConfig
	Density   DensityConfig
	Timetable TimetableConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// GridConfig holds the default timetable grid shape. Callers may
// override it per request via query parameters.
type GridConfig struct {
	StartHour       int
	EndHour         int
	SlotMinutes     int
	DayCount        int
	DayColumnWidth  float64
	SlotPixelHeight float64
	HeaderHeight    float64
}

// SuggestConfig tunes the meeting-time suggestion engine.
type SuggestConfig struct {
	SlotMinutes     int
	MinClassMinutes int
}

// DensityConfig governs caching of density maps.
type DensityConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// TimetableConfig gates write behaviour of the apply-diff endpoint.
type TimetableConfig struct {
	MaxBlocksPerApply int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Grid = GridConfig{
		StartHour:       v.GetInt("GRID_START_HOUR"),
		EndHour:         v.GetInt("GRID_END_HOUR"),
		SlotMinutes:     v.GetInt("GRID_SLOT_MINUTES"),
		DayCount:        v.GetInt("GRID_DAY_COUNT"),
		DayColumnWidth:  v.GetFloat64("GRID_DAY_COLUMN_WIDTH"),
		SlotPixelHeight: v.GetFloat64("GRID_SLOT_PIXEL_HEIGHT"),
		HeaderHeight:    v.GetFloat64("GRID_HEADER_HEIGHT"),
	}

	cfg.Suggest = SuggestConfig{
		SlotMinutes:     v.GetInt("SUGGEST_SLOT_MINUTES"),
		MinClassMinutes: v.GetInt("SUGGEST_MIN_CLASS_MINUTES"),
	}

	cfg.Density = DensityConfig{
		CacheEnabled: v.GetBool("DENSITY_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("DENSITY_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Timetable = TimetableConfig{
		MaxBlocksPerApply: v.GetInt("TIMETABLE_MAX_BLOCKS_PER_APPLY"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "hagwon_admin")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "hagwon-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GRID_START_HOUR", 9)
	v.SetDefault("GRID_END_HOUR", 22)
	v.SetDefault("GRID_SLOT_MINUTES", 30)
	v.SetDefault("GRID_DAY_COUNT", 7)
	v.SetDefault("GRID_DAY_COLUMN_WIDTH", 140)
	v.SetDefault("GRID_SLOT_PIXEL_HEIGHT", 24)
	v.SetDefault("GRID_HEADER_HEIGHT", 32)

	v.SetDefault("SUGGEST_SLOT_MINUTES", 30)
	v.SetDefault("SUGGEST_MIN_CLASS_MINUTES", 90)

	v.SetDefault("DENSITY_CACHE_ENABLED", false)
	v.SetDefault("DENSITY_CACHE_TTL", "5m")

	v.SetDefault("TIMETABLE_MAX_BLOCKS_PER_APPLY", 200)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
