package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	DefaultPlayerCount    int `yaml:"default_player_count"`    // 默认座位数（6 或 8）
	BotThinkDelay         int `yaml:"bot_think_delay"`         // 机器人思考延迟（毫秒）
	OfflinePromoteTimeout int `yaml:"offline_promote_timeout"` // 掉线多久后座位交给机器人（秒），0 = 永不
	LobbyTimeout          int `yaml:"lobby_timeout"`           // 等待开局的对局回收超时（分钟）
	ShutdownCheckInterval int `yaml:"shutdown_check_interval"` // 优雅关闭时轮询间隔（秒）
	ShutdownDelay         int `yaml:"shutdown_delay"`          // 对局清空后到进程退出的延迟（秒）
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"` // 为空时允许所有来源
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
}

// MessageLimitConfig 单连接消息速率限制
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// BotThinkDelayDuration 返回机器人思考延迟时长
func (c *GameConfig) BotThinkDelayDuration() time.Duration {
	return time.Duration(c.BotThinkDelay) * time.Millisecond
}

// OfflinePromoteTimeoutDuration 返回掉线接管时长
func (c *GameConfig) OfflinePromoteTimeoutDuration() time.Duration {
	return time.Duration(c.OfflinePromoteTimeout) * time.Second
}

// LobbyTimeoutDuration 返回等待开局超时时长
func (c *GameConfig) LobbyTimeoutDuration() time.Duration {
	return time.Duration(c.LobbyTimeout) * time.Minute
}

// ShutdownCheckIntervalDuration 返回关闭轮询间隔
func (c *GameConfig) ShutdownCheckIntervalDuration() time.Duration {
	return time.Duration(c.ShutdownCheckInterval) * time.Second
}

// ShutdownDelayDuration 返回关闭延迟
func (c *GameConfig) ShutdownDelayDuration() time.Duration {
	return time.Duration(c.ShutdownDelay) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults 为零值字段填充默认值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 1848
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = 1024
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Game.DefaultPlayerCount == 0 {
		c.Game.DefaultPlayerCount = 6
	}
	if c.Game.BotThinkDelay == 0 {
		c.Game.BotThinkDelay = 1200
	}
	if c.Game.LobbyTimeout == 0 {
		c.Game.LobbyTimeout = 10
	}
	if c.Game.ShutdownCheckInterval == 0 {
		c.Game.ShutdownCheckInterval = 5
	}
	if c.Game.ShutdownDelay == 0 {
		c.Game.ShutdownDelay = 3
	}
	if c.Security.MessageLimit.MaxPerSecond == 0 {
		c.Security.MessageLimit.MaxPerSecond = 20
	}
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
