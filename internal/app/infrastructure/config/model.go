package config

import "time"

type Config struct {
	App        App                  `json:"app"`
	Proxy      *Proxy               `json:"proxy"`
	Channels   Channels             `json:"channels"`
	Categories map[string]*Category `json:"categories"` // ключ - название игры
	Scheduler  Scheduler            `json:"scheduler"`
	Limiter    Limiter              `json:"limiter"`
}

type App struct {
	LogLevel   string `json:"log_level"`
	GinMode    string `json:"gin_mode"`
	ListenAddr string `json:"listen_addr"`
	BotToken   string `json:"bot_token"`
	AuthToken  string `json:"auth_token"`
}

type Proxy struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

type Channels struct {
	Summary    string `json:"summary"`    // канал минутных сводок
	Comparison string `json:"comparison"` // канал часовых/дневных сравнений
}

type Category struct {
	SourceChannel string `json:"source_channel"`
}

type Scheduler struct {
	TickInterval time.Duration `json:"tick_interval"`
}

type Limiter struct {
	Requests int           `json:"requests"` // сколько запросов к Discord API
	Per      time.Duration `json:"per"`      // за какое время
}
