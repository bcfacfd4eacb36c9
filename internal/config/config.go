package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken     string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN             string        `mapstructure:"DB_DSN"`
	Environment       string        `mapstructure:"ENV"`
	HTTPAddr          string        `mapstructure:"HTTP_ADDR"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	ClassDuration     int           `mapstructure:"CLASS_DURATION"`
	WeeksAhead        int           `mapstructure:"WEEKS_AHEAD"`
	AdminTelegramIDs  []int64       `mapstructure:"ADMIN_TELEGRAM_IDS"`
	DialogIdleTimeout time.Duration `mapstructure:"DIALOG_IDLE_TIMEOUT"`
}

const minClassDuration = 15

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken: getenv("TELEGRAM_TOKEN"),
		DBDSN:         getenv("DB_DSN"),
		Environment:   getenv("ENV"),
		HTTPAddr:      getenv("HTTP_ADDR"),
		JWTSecret:     getenv("JWT_SECRET"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	var err error
	if cfg.TokenTTL, err = durationOr(getenv("TOKEN_TTL"), 12*time.Hour); err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if cfg.DialogIdleTimeout, err = durationOr(getenv("DIALOG_IDLE_TIMEOUT"), 30*time.Minute); err != nil {
		return nil, fmt.Errorf("DIALOG_IDLE_TIMEOUT: %w", err)
	}
	if cfg.ClassDuration, err = intOr(getenv("CLASS_DURATION"), 60); err != nil {
		return nil, fmt.Errorf("CLASS_DURATION: %w", err)
	}
	if cfg.WeeksAhead, err = intOr(getenv("WEEKS_AHEAD"), 4); err != nil {
		return nil, fmt.Errorf("WEEKS_AHEAD: %w", err)
	}
	if cfg.AdminTelegramIDs, err = parseIDs(getenv("ADMIN_TELEGRAM_IDS")); err != nil {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_IDS: %w", err)
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if cfg.ClassDuration < minClassDuration {
		return nil, fmt.Errorf("CLASS_DURATION must be at least %d minutes", minClassDuration)
	}
	if cfg.WeeksAhead < 1 {
		return nil, fmt.Errorf("WEEKS_AHEAD must be positive")
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsProduction true для продового окружения
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func durationOr(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}

func intOr(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
