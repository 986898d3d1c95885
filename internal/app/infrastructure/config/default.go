package config

import "time"

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel:   "info",
			GinMode:    "release",
			ListenAddr: ":3000",
		},
		Channels: Channels{},
		Categories: map[string]*Category{
			"default": {SourceChannel: ""},
		},
		Scheduler: Scheduler{
			TickInterval: 60 * time.Second,
		},
		Limiter: Limiter{
			Requests: 5,
			Per:      5 * time.Second,
		},
	}
}
