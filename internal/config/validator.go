package config

import (
	"fmt"
	"strconv"
)

// Validate проверяет структурные параметры конфигурации.
// Проверяются только значения, при которых сервер не может работать;
// всё остальное деградирует к значениям по умолчанию при загрузке.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be a number in 1..65535, got %q", c.Port)
	}
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("max_upload_size_mb must be positive, got %d", c.MaxUploadSizeMB)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate_limit_rps must be positive, got %f", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_burst must be positive, got %d", c.RateLimitBurst)
	}
	if c.Discovery.ConfidenceThreshold < 0 || c.Discovery.ConfidenceThreshold > 1 {
		return fmt.Errorf("discovery confidence_threshold must be in [0,1], got %f", c.Discovery.ConfidenceThreshold)
	}
	return nil
}
