package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"retailserver/discovery"
)

// Config конфигурация сервера аналитики
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Загрузка выгрузок
	MaxUploadSizeMB int64 `json:"max_upload_size_mb"`

	// Ограничение частоты запросов
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`

	// CORS: пустой список разрешает любые origins
	CORSOrigins []string `json:"cors_origins"`

	// Движок обнаружения паттернов по умолчанию
	Discovery discovery.Config `json:"discovery"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Port:            "8080",
		LogLevel:        "info",
		MaxUploadSizeMB: 64,
		RateLimitRPS:    25,
		RateLimitBurst:  50,
		CORSOrigins:     []string{},
		Discovery:       discovery.DefaultConfig(),
	}
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем
// необязательный JSON-файл, затем переменные окружения
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.json"
	}
	if raw, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		log.Printf("Конфигурация загружена из %s", path)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides применяет переменные окружения поверх файла
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MAX_UPLOAD_SIZE_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadSizeMB = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("DISCOVERY_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Discovery.BatchSize = n
		}
	}
	if v := os.Getenv("DISCOVERY_MIN_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Discovery.MinThreshold = n
		}
	}
}
