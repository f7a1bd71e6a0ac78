// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// CMSBaseURL is the base URL of the headless CMS that owns all durable
	// data (users, tutorials, exercises) and all authentication.
	CMSBaseURL string `env:"CODEHUB_CMS_URL,required"`

	ServerHost string `env:"CODEHUB_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CODEHUB_SERVER_PORT" envDefault:"3000"`
	Env        string `env:"CODEHUB_ENV" envDefault:"development"`
	LogLevel   string `env:"CODEHUB_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL    string `env:"CODEHUB_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix string `env:"CODEHUB_CACHE_PREFIX" envDefault:"codehub:"` // Redis key prefix
	CacheTTL    int    `env:"CODEHUB_CACHE_TTL" envDefault:"60"`          // Content revalidation window in seconds

	// Code-execution API configuration
	ExecAPIURL  string `env:"CODEHUB_EXEC_API_URL"`  // Compiler service endpoint
	ExecAPIKey  string `env:"CODEHUB_EXEC_API_KEY"`  // Compiler service API key header
	ExecAPIHost string `env:"CODEHUB_EXEC_API_HOST"` // Compiler service host header

	// AI assistant configuration
	OpenAIAPIKey string `env:"CODEHUB_OPENAI_API_KEY"` // Chat proxy is disabled when empty
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// ExecEnabled returns true if the code-execution API is configured.
func (c Config) ExecEnabled() bool {
	return c.ExecAPIURL != "" && c.ExecAPIKey != "" && c.ExecAPIHost != ""
}

// AssistEnabled returns true if the AI assistant proxy is configured.
func (c Config) AssistEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// The CMS URL is joined with collection paths; a trailing slash would
	// produce double slashes in every upstream request.
	cfg.CMSBaseURL = strings.TrimRight(cfg.CMSBaseURL, "/")

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("CODEHUB_CACHE_TTL must be positive, got %d", cfg.CacheTTL)
	}

	return cfg, nil
}
