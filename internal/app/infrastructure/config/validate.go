package config

import (
	"errors"
	"fmt"
	"time"
)

func (m *Manager) validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error, fatal; got %s", cfg.App.LogLevel)
	}

	if cfg.App.BotToken == "" {
		return errors.New("app.bot_token is required")
	}
	if cfg.App.ListenAddr == "" {
		cfg.App.ListenAddr = ":3000"
	}

	// categories
	if len(cfg.Categories) == 0 {
		return errors.New("categories is required")
	}
	for name, cat := range cfg.Categories {
		if cat == nil {
			return fmt.Errorf("categories.%s is empty", name)
		}
		if cat.SourceChannel == "" {
			return fmt.Errorf("categories.%s.source_channel is required", name)
		}
	}

	// scheduler
	if cfg.Scheduler.TickInterval == 0 {
		cfg.Scheduler.TickInterval = 60 * time.Second
	}
	if cfg.Scheduler.TickInterval < time.Second {
		return errors.New("scheduler.tick_interval must be at least 1s")
	}

	// limiter
	if (cfg.Limiter.Requests != 0 && cfg.Limiter.Per == 0) || (cfg.Limiter.Requests == 0 && cfg.Limiter.Per != 0) {
		return errors.New("limiter.requests and limiter.per must both be set or both be zero")
	}

	return nil
}
