// Package config загружает конфигурацию сервера из переменных
// окружения с разумными значениями по умолчанию.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port string `json:"port"`

	// База данных каталога
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Корзина
	StateKey       string        `json:"state_key"`
	DebounceWindow time.Duration `json:"debounce_window"`
	GuardWindow    time.Duration `json:"guard_window"`

	// Внешний сервис рекомендаций; пустой BaseURL отключает его
	LookupBaseURL         string        `json:"lookup_base_url"`
	LookupTimeout         time.Duration `json:"lookup_timeout"`
	LookupRateLimitPerSec int           `json:"lookup_rate_limit_per_sec"`
	LookupCacheTTL        time.Duration `json:"lookup_cache_ttl"`

	// Ограничение частоты запросов к API
	RateLimitPerSec int `json:"rate_limit_per_sec"`
	RateLimitBurst  int `json:"rate_limit_burst"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port: getEnv("SERVER_PORT", "9999"),

		DatabasePath: getEnv("DATABASE_PATH", "catalog.db"),

		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 3),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		StateKey:       getEnv("CART_STATE_KEY", "shopcart:cart-state:v1"),
		DebounceWindow: getEnvDuration("CART_DEBOUNCE_WINDOW", 500*time.Millisecond),
		GuardWindow:    getEnvDuration("CART_GUARD_WINDOW", 200*time.Millisecond),

		LookupBaseURL:         os.Getenv("LOOKUP_BASE_URL"),
		LookupTimeout:         getEnvDuration("LOOKUP_TIMEOUT", 5*time.Second),
		LookupRateLimitPerSec: getEnvInt("LOOKUP_RATE_LIMIT_PER_SEC", 1),
		LookupCacheTTL:        getEnvDuration("LOOKUP_CACHE_TTL", 5*time.Minute),

		RateLimitPerSec: getEnvInt("API_RATE_LIMIT_PER_SEC", 50),
		RateLimitBurst:  getEnvInt("API_RATE_LIMIT_BURST", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("пустой порт сервера")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("некорректный порт сервера %q: %w", c.Port, err)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("пустой путь к базе данных")
	}
	if c.StateKey == "" {
		return fmt.Errorf("пустой ключ состояния корзины")
	}
	if c.DebounceWindow < 0 || c.GuardWindow < 0 {
		return fmt.Errorf("отрицательные окна debounce/guard")
	}
	if c.RateLimitPerSec <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("некорректные параметры ограничения частоты")
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
