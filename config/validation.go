package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ValidateConfig checks the loaded configuration for values the server
// cannot run without.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.AWSRegion == "" {
		return fmt.Errorf("AWS region is required")
	}
	if cfg.TableName == "" {
		return fmt.Errorf("table name is required")
	}
	if cfg.JWTSecret == "" && !IsTest() {
		return fmt.Errorf("JWT secret is required")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range", cfg.BcryptCost)
	}
	return nil
}
